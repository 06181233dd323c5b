/*
Package issuer is the collaborator each virtual user calls to actually
dispatch an HTTP request and turn the response into a RequestOutcome
(spec.md §4.5 step 2). It is the one place in this repo that talks to the
network; everything upstream of it (cadence, detection, back-fill,
aggregation) only ever sees the outcome, not the transport.

HTTPIssuer follows the With*-option builder pattern teacher uses for
pkg/health's checkers (NewHTTPChecker, WithMethod, WithTimeout): a Spec
describes one request, SuccessPredicate decides whether a response counts
as success, and Issue does the round trip and always returns an outcome —
even a transport error becomes an unsuccessful RequestOutcome rather than
a Go error, since a single failed HTTP call during a load test is data, not
a program fault.
*/
package issuer
