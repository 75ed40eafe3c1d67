// Package validator provides small declarative validation rules.
//
// A Rule pairs a Check function with translation-friendly error metadata.
// Apply evaluates rules and aggregates the failures into ValidationErrors,
// which implements error:
//
//	err := validator.Apply(
//	    validator.NotEmpty("to", req.To),
//	    validator.NotEmpty("subject", req.Subject),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs != nil {
//	    fmt.Println(errs.Fields()) // [to subject]
//	}
package validator
