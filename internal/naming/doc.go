// Package naming provides shared case conversion and convention-detection
// utilities for oaskb packages.
//
// Functions include ToPascalCase, ToCamelCase, ToSnakeCase, ToKebabCase,
// ToTitleCase, and DetectConvention. They are used by categorize for
// display-name derivation and by consistency for flagging mixed case
// conventions across operationIds and schema names.
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
