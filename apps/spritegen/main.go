package main

import (
	spritegen "github.com/jaym/spritegen/apps/spritegen/cmd"
)

func main() {
	spritegen.Execute()
}
