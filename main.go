package main

import "github.com/frahmantamala/restaurant-management/cmd"

func main() {
	cmd.Execute()
}
