// Package planfix implements the task source against the Planfix REST
// API. It speaks the POST /task/list contract: bearer-token auth, a
// JSON request with either a saved filter ID or per-role filters, and
// a response envelope that signals errors with result=fail even under
// HTTP 200.
package planfix
