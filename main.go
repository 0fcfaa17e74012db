package main

import "github.com/nelson960/Trend-Analysis/cmd"

func main() {
	cmd.Execute()
}
