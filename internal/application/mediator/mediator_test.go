package mediator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stars-go/internal/application/mediator"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

type pingCommand struct {
	Name string `validate:"required"`
}

type pingHandler struct {
	calls int
}

func (h *pingHandler) Handle(_ context.Context, request mediator.Request) (mediator.Response, error) {
	h.calls++
	return "pong " + request.(*pingCommand).Name, nil
}

func TestSend_DispatchesToRegisteredHandler(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	handler := &pingHandler{}
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, handler))

	// Act
	response, err := m.Send(context.Background(), &pingCommand{Name: "alice"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pong alice", response)
	assert.Equal(t, 1, handler.calls)
}

func TestSend_UnknownRequest(t *testing.T) {
	m := mediator.NewMediator()

	_, err := m.Send(context.Background(), &pingCommand{Name: "x"})

	assert.ErrorContains(t, err, "no handler registered")
}

func TestRegister_RejectsDuplicates(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, &pingHandler{}))

	err := mediator.RegisterHandler[*pingCommand](m, &pingHandler{})

	assert.ErrorContains(t, err, "already registered")
}

func TestUse_RunsMiddlewareOutermostFirst(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, &pingHandler{}))
	var order []string
	trace := func(name string) mediator.Middleware {
		return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			order = append(order, name+" in")
			response, err := next(ctx, request)
			order = append(order, name+" out")
			return response, err
		}
	}
	m.Use(trace("outer"), trace("inner"))

	// Act
	_, err := m.Send(context.Background(), &pingCommand{Name: "bob"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"outer in", "inner in", "inner out", "outer out"}, order)
}

func TestValidationMiddleware_StopsInvalidRequests(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	handler := &pingHandler{}
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, handler))
	m.Use(mediator.LoggingMiddleware(), mediator.ValidationMiddleware())

	// Act
	_, err := m.Send(context.Background(), &pingCommand{})

	// Assert
	var validationErr *shared.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Zero(t, handler.calls)
}
