package main

import "leaderboard-payouts/cmd"

func main() {
	cmd.Execute()
}
