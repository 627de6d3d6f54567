// Package errors provides the classified error primitives used across sitecfg.
//
// A ClassifiedError carries a category (config, validation, filesystem, ...),
// a severity and structured context. The fluent ErrorBuilder is the usual way
// to construct one:
//
//	err := errors.NewError(errors.CategoryValidation, "unsupported engine").
//		WithContext("field", "htmlEngine").
//		WithContext("value", engine).
//		Build()
//
// The CLI adapter maps categories to process exit codes.
package errors
