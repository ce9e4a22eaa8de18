//go:build !gui

package main

func initGUI() {
	panic("hotmic: built without GUI support (rebuild with -tags gui)")
}
