package ui

// Navigator moves the user to another view. In the HTTP shell this is a
// redirect; tests record the target path.
type Navigator interface {
	NavigateTo(path string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string)

func (f NavigatorFunc) NavigateTo(path string) { f(path) }
