// Package models defines the normalized item shapes returned to clients.
//
// Every upstream record, whatever its source, is mapped into one of two variants:
//   - [VideoItem] : a playable video from a public video playlist
//   - [AudioTrackItem] : a track from a public album on the music platform
//
// Both carry a [ItemType] discriminator serialized as "type" so a client can tell them apart
// without inspecting the remaining fields. A single response only ever holds one variant.
package models
