package graph

import (
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"github.com/fastygo/taskmaster/domain"
	appLogger "github.com/fastygo/taskmaster/pkg/logger"
)

const internalMessage = "internal server error"

// Error is the client-facing form of a resolver failure. graphql-go copies
// Extensions into the "extensions" member of the response error.
type Error struct {
	Message string
	Code    domain.ErrorCode
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": string(e.Code)}
}

// Translate maps err to a coded client error. Domain errors keep their
// message and code; anything else becomes INTERNAL_SERVER_ERROR with a generic message.
func Translate(err error) *Error {
	if dErr, ok := domain.AsDomainError(err); ok {
		return &Error{Message: dErr.Message, Code: dErr.Code}
	}
	return &Error{Message: internalMessage, Code: domain.ErrCodeInternal}
}

// translateErrors is the outermost interceptor on every root field.
func (b *builder) translateErrors(next graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		result, err := next(p)
		if err == nil {
			return result, nil
		}
		translated := Translate(err)
		if translated.Code == domain.ErrCodeInternal {
			appLogger.WithRequestID(p.Context, b.logger).Error("unexpected resolver error",
				zap.String("field", p.Info.FieldName),
				zap.Error(err),
			)
		}
		return nil, translated
	}
}
