package main

import "habitboard/frontend"

func main() {
	frontend.RunFrontend()
}
