package dto

// Envelope - единый формат ответа API.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// OK собирает успешный ответ с данными.
func OK(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Fail собирает ответ об ошибке.
func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

// FailWith собирает ответ об ошибке с деталями.
func FailWith(message string, data any) Envelope {
	return Envelope{Success: false, Message: message, Data: data}
}
