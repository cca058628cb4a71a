// Package errors provides structured error types for programmatic error
// handling across chefkoch.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeNotFound,
//	    "the file path or file name is incorrect",
//	    statErr,
//	    map[string]any{
//	        "path": path,
//	    },
//	)
//
// The HTTP layer maps codes to status codes with HTTPStatus(CodeOf(err)).
package errors
