// Package message models a console invocation as a request/response pair.
//
// A Request is built once from the positional arguments:
//
//	req, uctx := message.BuildRequest([]string{"/en/dashboard?page=2"}, "/", "en")
//	req.Language()           // "en"
//	req.URI().PathElement(1) // "dashboard"
//	uctx.Build("{/lang}/x")  // "/en/x"
//
// The Response carries named data; the Content slot is rendered into the body
// and written at most once:
//
//	res := message.BuildResponse(req, []string{"en", "de"})
//	res.Set(message.ContentKey, view)
//	body, err := res.Body(ctx)
//	err = res.Emit(os.Stdout, body)
//
// URIContext replaces a process-wide URI builder: it is returned by
// BuildRequest and passed explicitly to the components that need it.
package message
