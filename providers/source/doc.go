// Package source loads the document an extraction runs on.
//
// A reference is resolved in this order: an http(s) URL is fetched, an
// existing file path is read, anything else is used as literal text. HTML
// content (by Content-Type, file extension or a leading tag) is converted to
// Markdown so the generator sees prose rather than markup.
//
// Example:
//
//	doc, err := source.NewLoader().Load(ctx, "https://example.com/minutes")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(doc.Text)
package source
