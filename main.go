package main

import "github.com/thegrosss/FEM-Course-Project/cmd"

func main() {
	cmd.Execute()
}
