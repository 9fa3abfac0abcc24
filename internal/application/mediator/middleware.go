package mediator

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/stars-go/internal/application/common"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// LoggingMiddleware logs every request with its duration. Failures log at
// warn so turn errors stand out from routine traffic.
func LoggingMiddleware() Middleware {
	return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
		log := common.LoggerFromContext(ctx).With().Str("request", requestName(request)).Logger()
		ctx = common.WithLogger(ctx, log)

		start := time.Now()
		response, err := next(ctx, request)
		event := log.Debug()
		if err != nil {
			event = log.Warn().Err(err)
		}
		event.Dur("elapsed", time.Since(start)).Msg("request handled")
		return response, err
	}
}

// ValidationMiddleware checks `validate` struct tags on requests before they
// reach their handler.
func ValidationMiddleware() Middleware {
	v := validator.New()
	return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
		if isStruct(request) {
			if err := v.Struct(request); err != nil {
				return nil, validationError(requestName(request), err)
			}
		}
		return next(ctx, request)
	}
}

func validationError(name string, err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf("field '%s' failed validation: %s", e.Field(), e.Tag()))
	}
	return shared.NewValidationError(name, strings.Join(messages, "; "))
}

func isStruct(request Request) bool {
	t := reflect.TypeOf(request)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

func requestName(request Request) string {
	t := reflect.TypeOf(request)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
