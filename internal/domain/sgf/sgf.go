package sgf

// GameTree is one tree of a record: a main line of nodes plus variations.
type GameTree struct {
	Nodes    []Node
	Children []*GameTree
}

// Node is a set of properties such as B[pd], W[dd] or C[...]. A property may
// carry several values, e.g. AB[aa][bb].
type Node struct {
	Properties map[string][]string
}

// SGF is the root element of a record.
type SGF struct {
	Root *GameTree
}

// Property is a single key/value pair read from a record, in file order.
type Property struct {
	Key   string
	Value string
}

// Property keys understood by the game loader.
const (
	KeySize       = "SZ"
	KeyBlack      = "B"
	KeyWhite      = "W"
	KeyAddBlack   = "AB"
	KeyAddWhite   = "AW"
	KeyAddEmpty   = "AE"
	KeyBlackName  = "PB"
	KeyWhiteName  = "PW"
	KeyBlackRank  = "BR"
	KeyWhiteRank  = "WR"
	KeyDate       = "DT"
	KeyKomi       = "KM"
	KeyRules      = "RU"
	KeyResult     = "RE"
	KeyComment    = "C"
	KeyFileFormat = "FF"
	KeyGameType   = "GM"
)
