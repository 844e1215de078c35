// Package printing renders invoices and quotations.
//
// TemplateEngine executes one of the embedded HTML layouts (t1..t5) against a
// printing.InvoiceView. ChromedpConverter turns the resulting document into a
// PDF through a headless Chrome instance, either launched locally or reached
// over the DevTools protocol at a remote URL.
package printing
