package controller

// Response is the outcome of one action: the assigned variables plus
// either a template to render or a location to redirect to, never both.
type Response struct {
	Assigns  map[string]any
	Template string
	Location string
}

func render(template string, name string, value any) *Response {
	return &Response{
		Assigns:  map[string]any{name: value},
		Template: template,
	}
}

func redirect(location string, name string, value any) *Response {
	return &Response{
		Assigns:  map[string]any{name: value},
		Location: location,
	}
}

// IsRedirect reports whether the response redirects instead of rendering.
func (rsp *Response) IsRedirect() bool {
	return rsp.Location != ""
}

// Assigned returns the variable assigned under name, nil when absent.
func (rsp *Response) Assigned(name string) any {
	return rsp.Assigns[name]
}
