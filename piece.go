package main

type PlayerColor int

const (
	PlayerWhite PlayerColor = iota
	PlayerBlack
)

type BugType int

const (
	BugQueen BugType = iota
	BugSpider
	BugBeetle
	BugGrasshopper
	BugAnt
)

// PieceID identifies one physical piece. IDs 0..10 are white, 11..21 black,
// laid out in bugTypeByIndex order so owner and bug are derivable.
type PieceID uint8

const (
	piecesPerPlayer = 11
	totalPieces     = piecesPerPlayer * 2
	NoPiece         = PieceID(totalPieces)
)

var bugTypeByIndex = [piecesPerPlayer]BugType{
	BugQueen,
	BugSpider, BugSpider,
	BugBeetle, BugBeetle,
	BugGrasshopper, BugGrasshopper, BugGrasshopper,
	BugAnt, BugAnt, BugAnt,
}

func (p PieceID) Owner() PlayerColor {
	if p < piecesPerPlayer {
		return PlayerWhite
	}
	return PlayerBlack
}

func (p PieceID) Bug() BugType {
	return bugTypeByIndex[int(p)%piecesPerPlayer]
}

// QueenOf returns the queen piece of the given color.
func QueenOf(player PlayerColor) PieceID {
	if player == PlayerWhite {
		return PieceID(0)
	}
	return PieceID(piecesPerPlayer)
}

func otherPlayer(player PlayerColor) PlayerColor {
	if player == PlayerWhite {
		return PlayerBlack
	}
	return PlayerWhite
}

func (b BugType) String() string {
	switch b {
	case BugQueen:
		return "queen"
	case BugSpider:
		return "spider"
	case BugBeetle:
		return "beetle"
	case BugGrasshopper:
		return "grasshopper"
	default:
		return "ant"
	}
}

func (c PlayerColor) String() string {
	if c == PlayerWhite {
		return "White"
	}
	return "Black"
}
