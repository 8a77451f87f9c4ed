// Package view renders console responses with templ components.
//
// The bootstrap stores a [View] bound to [IndexTemplate] as the response
// Content. After dispatch the index template renders whatever the action
// returned: a component, a string, a list of lines or a map.
//
//	v := view.New(view.IndexTemplate, resp, view.WithTranslator(tr))
//	resp.Set(message.ContentKey, v)
//
// Modules build their output from templ.ComponentFunc or [Table] and read
// translations through [View.T] or module.Call.T.
package view
