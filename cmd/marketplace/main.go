package main

import "job-marketplace-api/app"

func main() {
	app.RunMarketplace()
}
