/*
Package samplebus fans out RequestSamples from every virtual user goroutine
to whichever consumers want them — the aggregator, the request log writer,
the live Prometheus exporter — without the issuing goroutine knowing or
caring who's listening.

Publish is non-blocking: a full subscriber buffer drops the sample for that
subscriber rather than stalling the user loop that produced it. This
mirrors spec.md §5's requirement that a slow consumer never become
back-pressure on request dispatch.
*/
package samplebus
