/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/thermoscope/thermoscope/cmd"

func main() {
	cmd.Execute()
}
