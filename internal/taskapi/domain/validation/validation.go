// Package validation содержит чистые функции проверки входных данных.
// Валидация выполняется до создания сущностей и до любого обращения к
// хранилищу: сущности получают только уже нормализованные значения.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Violation описывает одно нарушение правила для конкретного поля.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations - список нарушений; реализует error и может отдаваться
// клиенту как детализация ответа 400.
type Violations []Violation

// Error возвращает сводку нарушений.
func (v Violations) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(v))
	for _, violation := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", violation.Field, violation.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// MinPasswordLength - минимальная длина пароля до хэширования.
const MinPasswordLength = 7

// Name проверяет и нормализует имя пользователя.
func Name(raw string) (string, *Violation) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", &Violation{Field: "name", Message: "name is required"}
	}
	return name, nil
}

// Email проверяет формат и нормализует email (trim + нижний регистр).
func Email(raw string) (string, *Violation) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !emailRegex.MatchString(email) {
		return "", &Violation{Field: "email", Message: "invalid email"}
	}
	return email, nil
}

// Password проверяет пароль до хэширования: минимум 7 символов и
// запрет подстроки "password" без учета регистра.
func Password(raw string) (string, *Violation) {
	password := strings.TrimSpace(raw)
	if len(password) < MinPasswordLength {
		return "", &Violation{Field: "password", Message: fmt.Sprintf("password must contain at least %d characters", MinPasswordLength)}
	}
	if strings.Contains(strings.ToLower(password), "password") {
		return "", &Violation{Field: "password", Message: `password must not contain the word "password"`}
	}
	return password, nil
}

// Age проверяет, что возраст неотрицательный.
func Age(age int) *Violation {
	if age < 0 {
		return &Violation{Field: "age", Message: "age must be a non-negative integer"}
	}
	return nil
}

// TaskDescription проверяет и нормализует описание задачи.
func TaskDescription(raw string) (string, *Violation) {
	description := strings.TrimSpace(raw)
	if description == "" {
		return "", &Violation{Field: "description", Message: "description is required"}
	}
	return description, nil
}
