// Package hsr is the runtime support library imported by code hsrgen
// generates.
//
// Generated servers use [PathParam], [RequiredQuery] and [OptionalQuery] to
// read parameters, [DecodeJSON] to read request bodies, and [WriteJSON] and
// [WriteError] to answer. Handler errors are mapped to a status with
// [StatusOf]: any error in the chain implementing [StatusCoder] decides the
// status, and everything else becomes 500.
//
// Generated clients build and send requests with [Do] and decode bodies with
// [DecodeResponse]. Transport and decoding failures are reported as
// [*ClientError].
package hsr
