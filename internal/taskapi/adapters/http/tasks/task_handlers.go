// Package tasks содержит HTTP обработчики задач.
package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"taskhive/internal/taskapi/adapters/http/middleware"
	"taskhive/internal/taskapi/app/dto"
	"taskhive/internal/taskapi/domain/entities"
	"taskhive/internal/taskapi/domain/validation"
	"taskhive/internal/taskapi/ports/api"
	"taskhive/internal/taskapi/ports/repositories"
	"taskhive/pkg/logger"
)

// Константы для логирования и сообщений ответов.
const (
	LogHandlerCreateTask = "task handler: create task"
	LogHandlerListTasks  = "task handler: list tasks"
	LogHandlerGetTask    = "task handler: get task"
	LogHandlerUpdateTask = "task handler: update task"
	LogHandlerDeleteTask = "task handler: delete task"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"

	MsgTaskCreated      = "Task created"
	MsgTaskNotValid     = "Task not valid"
	MsgFailedCreateTask = "Failed to create task"
	MsgFetchedTasks     = "Fetched tasks"
	MsgFailedFetchTasks = "Failed to fetch tasks"
	MsgFetchedTask      = "Fetched task"
	MsgTaskNotFound     = "Task not found"
	MsgFailedFetchTask  = "Failed to fetch task"
	MsgInvalidTask      = "Invalid task"
	MsgUpdatedTask      = "Updated task"
	MsgFailedUpdateTask = "Failed to update task"
	MsgDeletedTask      = "Deleted task"
	MsgFailedDeleteTask = "Failed to delete task"

	sortDirectionAsc  = "asc"
	sortDirectionDesc = "desc"
)

// Разрешенные ключи частичного обновления задачи.
var allowedTaskUpdates = map[string]struct{}{
	"description": {},
	"completed":   {},
}

// ErrEmptySortField возвращается для sortBy из одного суффикса направления.
var ErrEmptySortField = errors.New("sort field is empty")

// Handler содержит HTTP обработчики задач.
type Handler struct {
	taskUC api.TaskUseCase
}

// NewHandler создает новый экземпляр обработчика задач.
func NewHandler(taskUC api.TaskUseCase) *Handler {
	return &Handler{taskUC: taskUC}
}

func sendJSON(ctx fiber.Ctx, statusCode int, body dto.Envelope) error {
	if err := ctx.Status(statusCode).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// CreateTask обрабатывает запрос на создание задачи.
func (h *Handler) CreateTask(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreateTask)

	var req dto.CreateTaskRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusBadRequest, dto.Fail(MsgTaskNotValid))
	}

	user := middleware.CurrentUser(ctx)

	task, err := h.taskUC.Create(requestCtx, user.ID, req.Description, req.Completed)
	if err != nil {
		var violations validation.Violations
		if errors.As(err, &violations) {
			return sendJSON(ctx, http.StatusBadRequest, dto.FailWith(MsgTaskNotValid, violations))
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusInternalServerError, dto.Fail(MsgFailedCreateTask))
	}

	return sendJSON(ctx, http.StatusCreated, dto.OK(MsgTaskCreated, dto.NewTaskResponse(task)))
}

// ListTasks возвращает задачи пользователя с учетом параметров выборки.
func (h *Handler) ListTasks(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerListTasks)

	filter, err := parseTaskFilter(ctx)
	if err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusBadRequest, dto.Fail(MsgFailedFetchTasks))
	}

	user := middleware.CurrentUser(ctx)

	tasks, err := h.taskUC.List(requestCtx, user.ID, filter)
	if err != nil {
		var violations validation.Violations
		if errors.As(err, &violations) {
			return sendJSON(ctx, http.StatusBadRequest, dto.FailWith(MsgFailedFetchTasks, violations))
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusInternalServerError, dto.Fail(MsgFailedFetchTasks))
	}

	return sendJSON(ctx, http.StatusOK, dto.OK(MsgFetchedTasks, dto.NewTaskListResponse(tasks)))
}

// GetTask возвращает одну задачу пользователя.
func (h *Handler) GetTask(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetTask)

	user := middleware.CurrentUser(ctx)

	task, err := h.taskUC.Get(requestCtx, user.ID, ctx.Params("id"))
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return sendJSON(ctx, http.StatusNotFound, dto.Fail(MsgTaskNotFound))
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusInternalServerError, dto.Fail(MsgFailedFetchTask))
	}

	return sendJSON(ctx, http.StatusOK, dto.OK(MsgFetchedTask, dto.NewTaskResponse(task)))
}

// UpdateTask применяет частичное обновление задачи.
// Тело разбирается в карту: неизвестный ключ отклоняет весь запрос.
func (h *Handler) UpdateTask(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdateTask)

	var fields map[string]any
	if err := json.Unmarshal(ctx.Body(), &fields); err != nil || fields == nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusBadRequest, dto.Fail(MsgInvalidTask))
	}

	for key := range fields {
		if _, ok := allowedTaskUpdates[key]; !ok {
			return sendJSON(ctx, http.StatusBadRequest, dto.Fail(MsgInvalidTask))
		}
	}

	user := middleware.CurrentUser(ctx)

	task, err := h.taskUC.Update(requestCtx, user.ID, ctx.Params("id"), fields)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return sendJSON(ctx, http.StatusNotFound, dto.Fail(MsgTaskNotFound))
		}
		var violations validation.Violations
		if errors.As(err, &violations) {
			return sendJSON(ctx, http.StatusBadRequest, dto.FailWith(MsgTaskNotValid, violations))
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusInternalServerError, dto.Fail(MsgFailedUpdateTask))
	}

	return sendJSON(ctx, http.StatusOK, dto.OK(MsgUpdatedTask, dto.NewTaskResponse(task)))
}

// DeleteTask удаляет задачу пользователя.
func (h *Handler) DeleteTask(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDeleteTask)

	user := middleware.CurrentUser(ctx)

	task, err := h.taskUC.Delete(requestCtx, user.ID, ctx.Params("id"))
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return sendJSON(ctx, http.StatusNotFound, dto.Fail(MsgTaskNotFound))
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusInternalServerError, dto.Fail(MsgFailedDeleteTask))
	}

	return sendJSON(ctx, http.StatusOK, dto.OK(MsgDeletedTask, dto.NewTaskResponse(task)))
}

// parseTaskFilter разбирает параметры запроса списка задач.
// Формат sortBy: "<поле>" или "<поле>_<asc|desc>"; направление по
// умолчанию - возрастание. Проверка имени поля остается за бизнес-логикой.
func parseTaskFilter(ctx fiber.Ctx) (repositories.TaskFilter, error) {
	var filter repositories.TaskFilter

	if raw := ctx.Query("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, fmt.Errorf("parsing completed: %w", err)
		}
		filter.Completed = &completed
	}

	if raw := ctx.Query("sortBy"); raw != "" {
		field := raw
		if idx := strings.LastIndex(raw, "_"); idx >= 0 {
			switch raw[idx+1:] {
			case sortDirectionAsc:
				field = raw[:idx]
			case sortDirectionDesc:
				field = raw[:idx]
				filter.SortDesc = true
			}
		}
		// Суффикс направления без имени поля - ошибка, а не "без сортировки".
		if field == "" {
			return filter, fmt.Errorf("parsing sortBy: %w", ErrEmptySortField)
		}
		filter.SortField = field
	}

	if raw := ctx.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return filter, fmt.Errorf("parsing limit: %w", err)
		}
		filter.Limit = &limit
	}

	if raw := ctx.Query("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil {
			return filter, fmt.Errorf("parsing skip: %w", err)
		}
		filter.Skip = &skip
	}

	return filter, nil
}
