// Package route validates the operations of a document into routes.
//
// A [Route] carries everything an emitter needs: method, parsed path
// template, path parameters in placeholder order, query parameters (optional
// ones wrapped in typemodel.OptionalOf), the JSON request body, exactly one 2xx
// success response, the declared 4xx error responses and the optional default
// error payload.
//
// [BuildSet] fails fast on the first operation that breaks a rule: a missing or
// duplicate operationId, a non-literal or out-of-class status code, a second
// success status, a path parameter count that disagrees with the template, a
// header or cookie parameter, a non-JSON body or an untyped default response.
// Every error is an [oaserrors.RouteError], or the SchemaError/ReferenceError
// produced while resolving the types involved.
package route
