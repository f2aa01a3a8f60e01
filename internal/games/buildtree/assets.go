package buildtree

import (
	"embed"

	"github.com/vovakirdan/buildtree/internal/core"
)

//go:embed assets/*.txt
var assetFS embed.FS

// assets holds the menu artwork, parsed once per game instance.
type assets struct {
	title core.Sprite
	tree  core.Sprite
}

func loadAssets() assets {
	return assets{
		title: loadSprite("assets/title.txt"),
		tree:  loadSprite("assets/tree.txt"),
	}
}

// loadSprite reads an embedded sprite. A missing file yields an empty
// sprite, which draws nothing.
func loadSprite(name string) core.Sprite {
	data, err := assetFS.ReadFile(name)
	if err != nil {
		return core.Sprite{}
	}
	return core.ParseSprite(data)
}
