// Package log provides a buffered, rotating level logger with
// production-ready features including bounded-memory ingestion, automatic
// file rotation, disk space management and fatal-crash capture.
//
// Features:
//   - Asynchronous logging through a shared ingest buffer and a single
//     background flusher
//   - Automatic log file rotation based on size, with a numbered ladder
//     (file.log, file.log.1, file.log.2, ...)
//   - Buffer overflow containment: when the ingest buffer is full the older
//     half is discarded and the loss is marked in the stream
//   - Disk space management with configurable limits
//   - Dropped log detection and reporting
//   - Fatal records flush the logger, write the fatal file with a stack
//     trace and terminate the process
//   - Signal-triggered shutdown that drains buffered records
//   - Thread-safe producers; the flusher is the only writer to the file
package log
