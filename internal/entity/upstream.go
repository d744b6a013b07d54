package entity

import "context"

// SaveEnvelope is the upstream metadata describing where to download a
// player's save blob and how to verify it once downloaded.
type SaveEnvelope struct {
	// URL is the location of the save blob itself.
	URL string
	// Checksum is the upstream-reported MD5 checksum of the blob.
	Checksum string
}

// Profile is the subset of upstream profile data the orchestrators need:
// the platform's internal object ID and the player's self-introduction
// text (used by the profile-proved unbind flow).
type Profile struct {
	ObjectID  string
	Nickname  string
	SelfIntro string
}

// UpstreamClient fetches save envelopes, save blobs, and profile data from
// the platform backing a session token.
type UpstreamClient interface {
	// FetchSaveEnvelope resolves a session token to its current save
	// envelope.
	//
	// # Possible errors:
	//
	//   - AuthExpired: the upstream rejected the token (HTTP 401).
	//   - Upstream: any other upstream failure.
	FetchSaveEnvelope(ctx context.Context, sessionToken string) (*SaveEnvelope, error)

	// FetchSaveBlob downloads the raw encrypted save bytes from the
	// envelope's URL and validates its checksum and minimum size.
	//
	// # Possible errors:
	//
	//   - SaveIntegrity: the blob is smaller than the minimum valid size
	//     or its checksum does not match the envelope.
	//   - Upstream: the download itself failed.
	FetchSaveBlob(ctx context.Context, envelope *SaveEnvelope) ([]byte, error)

	// FetchProfile resolves a session token to the player's profile.
	//
	// # Possible errors:
	//
	//   - AuthExpired: the upstream rejected the token (HTTP 401).
	//   - Upstream: any other upstream failure.
	FetchProfile(ctx context.Context, sessionToken string) (*Profile, error)
}
