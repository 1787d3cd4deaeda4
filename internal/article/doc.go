// package article fetches a web page and reduces it to the plain text handed to a summarizer.
//
// Paragraph text is collected with goquery, matching the way the summarize endpoint has always
// read pages. When a page has no <p> content, go-readability is used as a fallback. The result
// is truncated on a rune boundary and tagged with its detected language.
package article
