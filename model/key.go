package model

type Key string

const (
	KeyS      Key = "KeyS"
	KeyD      Key = "KeyD"
	KeyJ      Key = "KeyJ"
	KeyK      Key = "KeyK"
	KeyR      Key = "KeyR"
	KeyEscape Key = "Escape"
)

var TrackKeys = [NumTracks]Key{KeyS, KeyD, KeyJ, KeyK}

func (k Key) Track() (TrackID, bool) {
	for i, tk := range TrackKeys {
		if tk == k {
			return TrackID(i), true
		}
	}
	return 0, false
}

func (k Key) Valid() bool {
	if _, ok := k.Track(); ok {
		return true
	}
	return k == KeyR || k == KeyEscape
}

// KeySet is an insertion-ordered set of pressed keys.
type KeySet []Key

func (s KeySet) Has(k Key) bool {
	for _, x := range s {
		if x == k {
			return true
		}
	}
	return false
}

func (s KeySet) With(k Key) KeySet {
	if s.Has(k) {
		return s
	}
	out := make(KeySet, 0, len(s)+1)
	out = append(out, s...)
	return append(out, k)
}

func (s KeySet) Without(k Key) KeySet {
	out := make(KeySet, 0, len(s))
	for _, x := range s {
		if x != k {
			out = append(out, x)
		}
	}
	return out
}
