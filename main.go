package main

import "github.com/reelworks/reel-api/cmd"

// @title           Reel Revision API
// @version         1.0.0
// @description     Versioned metadata and transcript editing for machining reels
// @contact.name    API Support
// @contact.url     https://github.com/reelworks/reel-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
