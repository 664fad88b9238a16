package main

import "github.com/follgramer/DiamantesProPlayers/internal/cli"

func main() {
	cli.Execute()
}
