package main

import "github.com/RigelNana/arkstudy/services/admin-service/cmd"

func main() {
	cmd.Execute()
}
