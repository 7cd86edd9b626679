package feed

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Identity returns the stable identifier used to decide whether an item
// was already delivered. Feeds vary wildly in which identity-bearing
// field they populate: prefer the GUID (gofeed folds RSS guid and Atom
// id into it), then the link, then a content hash so items lacking all
// of them still identify stably across runs. Two distinct items with
// identical title, date and description collide on the hash; that
// tradeoff is accepted.
func Identity(item Item) string {
	if item.GUID != "" {
		return item.GUID
	}
	if item.Link != "" {
		return item.Link
	}

	content := fmt.Sprintf("%s|%s|%s", item.Title, item.Published, item.Description)
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
