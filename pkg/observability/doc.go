/*
Package observability provides tools for monitoring the dfakit simulator.

It turns simulator lifecycle hooks into Prometheus metrics and structured log
records, and lets several hook sets be combined into one.
*/
package observability
