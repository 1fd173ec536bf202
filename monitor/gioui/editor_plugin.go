//go:build plugin

package gioui

// in a plugin, closing the window only hides the editor; the host decides
// when to quit
const canQuit = false
