// Package examplegen produces request examples for one endpoint in one of
// three source-text forms: curl, http-client, and script. Each form lives
// in its own sub-package (examplegen/curl, examplegen/httpclient,
// examplegen/script) behind the Generator interface defined here; callers
// assemble a Request and hand it to the form's Generate function.
//
// Grounded on how oastools keeps code-shape decisions (path rendering,
// header ordering) close to the data they render from, and on
// original_source/src/tests/unit/test_get_example_v2.py for the exact
// placeholder and auth-header conventions (YOUR_TOKEN_HERE, 12345 path
// sentinels, the "John Doe" request-body convention for name properties).
package examplegen
