// Package pipeline is the cross-cutting request pipeline every inbound
// PostHub call passes through.
//
// Stage order (outermost first) is fixed and enforced by the app wiring:
//
//  1. correlation tagging — must run before everything else so any later
//     stage can attribute its response to a correlation id
//  2. request logging, metrics, security headers, CORS
//  3. rate admission — rejects over-budget clients before any handler runs
//  4. failure translation — the Translate adapter plus WithRecovery form the
//     outermost failure boundary: typed failures and panics are mapped to an
//     HTTP status and the fixed {correlationId, message, statusCode} body
//     exactly once, and logged with full detail
package pipeline
