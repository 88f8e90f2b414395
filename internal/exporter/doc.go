// Package exporter renders tabular results to portable byte formats:
// UTF-8 delimited text (CSV) and spreadsheet (XLSX). Serialization is a
// pure transformation into an in-memory buffer; callers own any file or
// network I/O. Failures are recoverable SERIALIZATION errors so a caller
// can fall back to the alternate format.
package exporter
