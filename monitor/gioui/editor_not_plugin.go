//go:build !plugin

package gioui

const canQuit = true
