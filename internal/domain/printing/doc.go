// Package printing holds the document view model that invoice and quotation
// templates are rendered from.
package printing
