/*
DESCRIPTION
  tables.go holds the literal variable-length-code tables used by the
  macroblock and block layer parsers: MCBPC (I and P pictures), CBPY, MODB,
  MVD, and the short-form TCOEF table. Every entry is transcribed verbatim
  from ITU-T Recommendation H.263 (01/2005) Tables 7, 9, 11, 12, 13 and 14;
  getting a single bit of any of these tables wrong desynchronises every
  macroblock that follows it, so none of them are hand-simplified.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package h263dec

import "github.com/ausocean/h263/codec/h263/h263dec/bits"

// mcbpcResult is the decoded output of walking an MCBPC table: either a
// valid macroblock type plus its two chroma coded-block-pattern bits, a
// stuffing codeword, or an invalid (reserved) codeword.
type mcbpcResult struct {
	kind              mcbpcKind
	Type              MacroblockType
	ChromaB, ChromaR  bool
}

type mcbpcKind uint8

const (
	mcbpcKindValid mcbpcKind = iota
	mcbpcKindStuffing
	mcbpcKindInvalid
)

func mcbpcValid(t MacroblockType, chromaB, chromaR bool) mcbpcResult {
	return mcbpcResult{kind: mcbpcKindValid, Type: t, ChromaB: chromaB, ChromaR: chromaR}
}

var (
	mcbpcStuffing = mcbpcResult{kind: mcbpcKindStuffing}
	mcbpcInvalid  = mcbpcResult{kind: mcbpcKindInvalid}
)

func (r mcbpcResult) IsStuffing() bool { return r.kind == mcbpcKindStuffing }
func (r mcbpcResult) IsInvalid() bool  { return r.kind == mcbpcKindInvalid }

// Short aliases matching the six MacroblockType variants MCBPC selects
// between, kept local to this file to keep the table literals below
// readable against ITU-T Recommendation H.263 (01/2005) Tables 7 and 8.
const (
	mbTypeInter    = MBTypeInter
	mbTypeInterQ   = MBTypeInterQ
	mbTypeInter4V  = MBTypeInter4V
	mbTypeIntra    = MBTypeIntra
	mbTypeIntraQ   = MBTypeIntraQ
	mbTypeInter4VQ = MBTypeInter4Vq
)

// mcbpcITable is ITU-T Recommendation H.263 (01/2005) Table 7: MCBPC for
// I-pictures.
var mcbpcITable = []bits.Entry[mcbpcResult]{
	bits.Fork[mcbpcResult](2, 1),                        // slot 0
	bits.End(mcbpcValid(mbTypeIntra, false, false)),     // slot 1
	bits.Fork[mcbpcResult](6, 3),                        // slot 2
	bits.Fork[mcbpcResult](4, 5),                        // slot 3
	bits.End(mcbpcValid(mbTypeIntra, true, false)),      // slot 4
	bits.End(mcbpcValid(mbTypeIntra, true, true)),       // slot 5
	bits.Fork[mcbpcResult](8, 7),                        // slot 6
	bits.End(mcbpcValid(mbTypeIntra, false, true)),      // slot 7
	bits.Fork[mcbpcResult](10, 9),                       // slot 8
	bits.End(mcbpcValid(mbTypeIntraQ, false, false)),    // slot 9
	bits.Fork[mcbpcResult](14, 11),                      // slot 10
	bits.Fork[mcbpcResult](12, 13),                      // slot 11
	bits.End(mcbpcValid(mbTypeIntraQ, true, false)),     // slot 12
	bits.End(mcbpcValid(mbTypeIntraQ, true, true)),      // slot 13
	bits.Fork[mcbpcResult](16, 20),                      // slot 14
	bits.End(mcbpcInvalid),                              // slot 15
	bits.Fork[mcbpcResult](17, 15),                      // slot 16
	bits.Fork[mcbpcResult](18, 15),                      // slot 17
	bits.Fork[mcbpcResult](15, 19),                      // slot 18
	bits.End(mcbpcStuffing),                             // slot 19
	bits.End(mcbpcValid(mbTypeIntraQ, false, true)),     // slot 20
}

// mcbpcPTable is ITU-T Recommendation H.263 (01/2005) Table 8: MCBPC for
// P-pictures (and any picture type built on P, e.g. PB).
var mcbpcPTable = []bits.Entry[mcbpcResult]{
	bits.Fork[mcbpcResult](2, 1),                        // slot 0
	bits.End(mcbpcValid(mbTypeInter, false, false)),     // slot 1
	bits.Fork[mcbpcResult](6, 3),                        // slot 2
	bits.Fork[mcbpcResult](4, 5),                        // slot 3
	bits.End(mcbpcValid(mbTypeInter4V, false, false)),   // slot 4
	bits.End(mcbpcValid(mbTypeInterQ, false, false)),    // slot 5
	bits.Fork[mcbpcResult](10, 7),                       // slot 6
	bits.Fork[mcbpcResult](8, 9),                        // slot 7
	bits.End(mcbpcValid(mbTypeInter, true, false)),      // slot 8
	bits.End(mcbpcValid(mbTypeInter, false, true)),      // slot 9
	bits.Fork[mcbpcResult](16, 11),                      // slot 10
	bits.Fork[mcbpcResult](13, 12),                      // slot 11
	bits.End(mcbpcValid(mbTypeIntra, false, false)),     // slot 12
	bits.Fork[mcbpcResult](14, 15),                      // slot 13
	bits.End(mcbpcValid(mbTypeIntraQ, false, false)),    // slot 14
	bits.End(mcbpcValid(mbTypeInter, true, true)),       // slot 15
	bits.Fork[mcbpcResult](24, 17),                      // slot 16
	bits.Fork[mcbpcResult](18, 21),                      // slot 17
	bits.Fork[mcbpcResult](19, 20),                      // slot 18
	bits.End(mcbpcValid(mbTypeInter4V, true, false)),    // slot 19
	bits.End(mcbpcValid(mbTypeInter4V, false, true)),    // slot 20
	bits.Fork[mcbpcResult](22, 23),                      // slot 21
	bits.End(mcbpcValid(mbTypeInterQ, true, false)),     // slot 22
	bits.End(mcbpcValid(mbTypeInterQ, false, true)),     // slot 23
	bits.Fork[mcbpcResult](30, 25),                      // slot 24
	bits.Fork[mcbpcResult](27, 26),                      // slot 25
	bits.End(mcbpcValid(mbTypeIntra, true, true)),       // slot 26
	bits.Fork[mcbpcResult](28, 29),                      // slot 27
	bits.End(mcbpcValid(mbTypeIntra, false, true)),      // slot 28
	bits.End(mcbpcValid(mbTypeInter4V, true, true)),     // slot 29
	bits.Fork[mcbpcResult](36, 31),                      // slot 30
	bits.Fork[mcbpcResult](33, 32),                      // slot 31
	bits.End(mcbpcValid(mbTypeIntra, true, false)),      // slot 32
	bits.Fork[mcbpcResult](34, 35),                      // slot 33
	bits.End(mcbpcValid(mbTypeIntraQ, false, true)),     // slot 34
	bits.End(mcbpcValid(mbTypeInterQ, true, true)),      // slot 35
	bits.Fork[mcbpcResult](40, 37),                      // slot 36
	bits.Fork[mcbpcResult](38, 39),                      // slot 37
	bits.End(mcbpcValid(mbTypeIntraQ, true, true)),      // slot 38
	bits.End(mcbpcValid(mbTypeIntraQ, true, false)),     // slot 39
	bits.Fork[mcbpcResult](42, 41),                      // slot 40
	bits.End(mcbpcStuffing),                             // slot 41
	bits.Fork[mcbpcResult](43, 44),                      // slot 42
	bits.End(mcbpcInvalid),                              // slot 43
	bits.Fork[mcbpcResult](45, 46),                      // slot 44
	bits.End(mcbpcValid(mbTypeInter4VQ, false, false)),  // slot 45
	bits.Fork[mcbpcResult](47, 50),                      // slot 46
	bits.Fork[mcbpcResult](48, 49),                      // slot 47
	bits.End(mcbpcValid(mbTypeInter4VQ, false, true)),   // slot 48
	bits.End(mcbpcInvalid),                              // slot 49
	bits.Fork[mcbpcResult](51, 52),                      // slot 50
	bits.End(mcbpcValid(mbTypeInter4VQ, true, false)),   // slot 51
	bits.End(mcbpcValid(mbTypeInter4VQ, true, true)),    // slot 52
}

// modbResult is the decoded output of the MODB table used by PB-frame
// macroblocks: whether a CBPB follows, and whether B-block motion vectors
// follow.
type modbResult struct {
	HasCBPB bool
	HasMVDB bool
}

func modbEntry(hasCBPB, hasMVDB bool) modbResult {
	return modbResult{HasCBPB: hasCBPB, HasMVDB: hasMVDB}
}

// modbTable is ITU-T Recommendation H.263 (01/2005) Table 9: MODB.
var modbTable = []bits.Entry[modbResult]{
	bits.Fork[modbResult](1, 2),           // slot 0
	bits.End(modbEntry(false, false)),     // slot 1
	bits.Fork[modbResult](3, 4),           // slot 2
	bits.End(modbEntry(false, true)),      // slot 3
	bits.End(modbEntry(true, true)),       // slot 4
}

// cbpyResult is the decoded output of the CBPY table: four booleans, one
// per luma block, or an invalid marker.
type cbpyResult struct {
	Valid bool
	Bits  [4]bool
}

var cbpyNone = cbpyResult{}

func cbpyBits(b0, b1, b2, b3 bool) cbpyResult {
	return cbpyResult{Valid: true, Bits: [4]bool{b0, b1, b2, b3}}
}

// cbpyIntraTable is ITU-T Recommendation H.263 (01/2005) Table 11: CBPY,
// INTRA column. For inter-coded macroblocks every bit in the result must be
// inverted by the caller (Table 12's INTER column is this table's
// complement).
var cbpyIntraTable = []bits.Entry[cbpyResult]{
	bits.Fork[cbpyResult](1, 24),                        // slot 0
	bits.Fork[cbpyResult](2, 17),                        // slot 1
	bits.Fork[cbpyResult](3, 12),                        // slot 2
	bits.Fork[cbpyResult](4, 9),                         // slot 3
	bits.Fork[cbpyResult](5, 6),                         // slot 4
	bits.End(cbpyNone),                                  // slot 5
	bits.Fork[cbpyResult](7, 8),                         // slot 6
	bits.End(cbpyBits(false, true, true, false)),        // slot 7
	bits.End(cbpyBits(true, false, false, true)),        // slot 8
	bits.Fork[cbpyResult](10, 11),                       // slot 9
	bits.End(cbpyBits(true, false, false, false)),       // slot 10
	bits.End(cbpyBits(false, true, false, false)),       // slot 11
	bits.Fork[cbpyResult](13, 16),                       // slot 12
	bits.Fork[cbpyResult](14, 15),                       // slot 13
	bits.End(cbpyBits(false, false, true, false)),       // slot 14
	bits.End(cbpyBits(false, false, false, true)),       // slot 15
	bits.End(cbpyBits(false, false, false, false)),      // slot 16
	bits.Fork[cbpyResult](18, 21),                       // slot 17
	bits.Fork[cbpyResult](19, 20),                       // slot 18
	bits.End(cbpyBits(true, true, false, false)),        // slot 19
	bits.End(cbpyBits(true, false, true, false)),        // slot 20
	bits.Fork[cbpyResult](22, 23),                       // slot 21
	bits.End(cbpyBits(true, true, true, false)),         // slot 22
	bits.End(cbpyBits(false, true, false, true)),        // slot 23
	bits.Fork[cbpyResult](25, 32),                       // slot 24
	bits.Fork[cbpyResult](26, 29),                       // slot 25
	bits.Fork[cbpyResult](27, 28),                       // slot 26
	bits.End(cbpyBits(true, true, false, true)),         // slot 27
	bits.End(cbpyBits(false, false, true, true)),        // slot 28
	bits.Fork[cbpyResult](30, 31),                       // slot 29
	bits.End(cbpyBits(true, false, true, true)),         // slot 30
	bits.End(cbpyBits(false, true, true, true)),         // slot 31
	bits.End(cbpyBits(true, true, true, true)),          // slot 32
}

// mvdResult is the decoded output of the MVD table: a half-pel motion
// vector component delta, or an invalid marker.
type mvdResult struct {
	Valid bool
	Value HalfPel
}

var mvdNone = mvdResult{}

func mvdValue(n int) mvdResult {
	return mvdResult{Valid: true, Value: HalfPel(n)}
}

// mvdTable is ITU-T Recommendation H.263 (01/2005) Table 14: MVD, Vector
// column. Values are already scaled to half-pel units (the original table
// is expressed in quarter-steps of 0.5 pixel).
var mvdTable = []bits.Entry[mvdResult]{
	bits.Fork[mvdResult](2, 1), bits.End(mvdValue(0)),
	bits.Fork[mvdResult](6, 3), bits.Fork[mvdResult](4, 5),
	bits.End(mvdValue(1)), bits.End(mvdValue(-1)),
	bits.Fork[mvdResult](10, 7), bits.Fork[mvdResult](8, 9),
	bits.End(mvdValue(2)), bits.End(mvdValue(-2)),
	bits.Fork[mvdResult](14, 11), bits.Fork[mvdResult](12, 13),
	bits.End(mvdValue(3)), bits.End(mvdValue(-3)),
	bits.Fork[mvdResult](26, 15), bits.Fork[mvdResult](19, 16), bits.Fork[mvdResult](17, 18),
	bits.End(mvdValue(4)), bits.End(mvdValue(-4)),
	bits.Fork[mvdResult](23, 20), bits.Fork[mvdResult](21, 22),
	bits.End(mvdValue(5)), bits.End(mvdValue(-5)),
	bits.Fork[mvdResult](24, 25),
	bits.End(mvdValue(6)), bits.End(mvdValue(-6)),
	bits.Fork[mvdResult](50, 27), bits.Fork[mvdResult](31, 28), bits.Fork[mvdResult](29, 30),
	bits.End(mvdValue(7)), bits.End(mvdValue(-7)),
	bits.Fork[mvdResult](39, 32), bits.Fork[mvdResult](36, 33), bits.Fork[mvdResult](34, 35),
	bits.End(mvdValue(8)), bits.End(mvdValue(-8)),
	bits.Fork[mvdResult](37, 38),
	bits.End(mvdValue(9)), bits.End(mvdValue(-9)),
	bits.Fork[mvdResult](43, 40), bits.Fork[mvdResult](41, 42),
	bits.End(mvdValue(10)), bits.End(mvdValue(-10)),
	bits.Fork[mvdResult](47, 44), bits.Fork[mvdResult](45, 46),
	bits.End(mvdValue(11)), bits.End(mvdValue(-11)),
	bits.Fork[mvdResult](48, 49),
	bits.End(mvdValue(12)), bits.End(mvdValue(-12)),
	bits.Fork[mvdResult](82, 51), bits.Fork[mvdResult](67, 52), bits.Fork[mvdResult](60, 53),
	bits.Fork[mvdResult](57, 54), bits.Fork[mvdResult](55, 56),
	bits.End(mvdValue(13)), bits.End(mvdValue(-13)),
	bits.Fork[mvdResult](58, 59),
	bits.End(mvdValue(14)), bits.End(mvdValue(-14)),
	bits.Fork[mvdResult](64, 61), bits.Fork[mvdResult](62, 63),
	bits.End(mvdValue(15)), bits.End(mvdValue(-15)),
	bits.Fork[mvdResult](65, 66),
	bits.End(mvdValue(16)), bits.End(mvdValue(-16)),
	bits.Fork[mvdResult](75, 68), bits.Fork[mvdResult](72, 69), bits.Fork[mvdResult](70, 71),
	bits.End(mvdValue(17)), bits.End(mvdValue(-17)),
	bits.Fork[mvdResult](73, 74),
	bits.End(mvdValue(18)), bits.End(mvdValue(-18)),
	bits.Fork[mvdResult](79, 76), bits.Fork[mvdResult](77, 78),
	bits.End(mvdValue(19)), bits.End(mvdValue(-19)),
	bits.Fork[mvdResult](80, 81),
	bits.End(mvdValue(20)), bits.End(mvdValue(-20)),
	bits.Fork[mvdResult](98, 83), bits.Fork[mvdResult](91, 84), bits.Fork[mvdResult](88, 85),
	bits.Fork[mvdResult](86, 87),
	bits.End(mvdValue(21)), bits.End(mvdValue(-21)),
	bits.Fork[mvdResult](89, 90),
	bits.End(mvdValue(22)), bits.End(mvdValue(-22)),
	bits.Fork[mvdResult](95, 92), bits.Fork[mvdResult](93, 94),
	bits.End(mvdValue(23)), bits.End(mvdValue(-23)),
	bits.Fork[mvdResult](96, 97),
	bits.End(mvdValue(24)), bits.End(mvdValue(-24)),
	bits.Fork[mvdResult](114, 99), bits.Fork[mvdResult](107, 100), bits.Fork[mvdResult](104, 101),
	bits.Fork[mvdResult](102, 103),
	bits.End(mvdValue(25)), bits.End(mvdValue(-25)),
	bits.Fork[mvdResult](105, 106),
	bits.End(mvdValue(26)), bits.End(mvdValue(-26)),
	bits.Fork[mvdResult](111, 108), bits.Fork[mvdResult](109, 110),
	bits.End(mvdValue(27)), bits.End(mvdValue(-27)),
	bits.Fork[mvdResult](112, 113),
	bits.End(mvdValue(28)), bits.End(mvdValue(-28)),
	bits.Fork[mvdResult](122, 115), bits.Fork[mvdResult](119, 116), bits.Fork[mvdResult](117, 118),
	bits.End(mvdValue(29)), bits.End(mvdValue(-29)),
	bits.Fork[mvdResult](120, 121),
	bits.End(mvdValue(30)), bits.End(mvdValue(-30)),
	bits.Fork[mvdResult](129, 123), bits.Fork[mvdResult](127, 124), bits.Fork[mvdResult](125, 126),
	bits.End(mvdValue(31)), bits.End(mvdValue(-31)),
	bits.Fork[mvdResult](129, 128),
	bits.End(mvdValue(-32)),
	bits.End(mvdNone),
}

// tcoefResult is the decoded output of the TCOEF short table: either an
// escape signalling a long (FLC) coefficient follows, a resolved
// run/level/last triple (sign still to be read separately), or an invalid
// marker.
type tcoefResult struct {
	kind tcoefKind
	Last bool
	Run  uint8
	Level uint8
}

type tcoefKind uint8

const (
	tcoefKindRun tcoefKind = iota
	tcoefKindEscape
	tcoefKindNone
)

func tcoefRun(last bool, run, level uint8) tcoefResult {
	return tcoefResult{kind: tcoefKindRun, Last: last, Run: run, Level: level}
}

var (
	tcoefEscape = tcoefResult{kind: tcoefKindEscape}
	tcoefNone   = tcoefResult{kind: tcoefKindNone}
)

func (r tcoefResult) IsEscape() bool { return r.kind == tcoefKindEscape }
func (r tcoefResult) IsValid() bool  { return r.kind == tcoefKindRun }

// tcoefTable is ITU-T Recommendation H.263 (01/2005) Table 13: TCOEF,
// short form (INTRA/INTER coefficients up to the point where ESCAPE is
// required).
var tcoefTable = []bits.Entry[tcoefResult]{
	bits.Fork[tcoefResult](8, 1), bits.Fork[tcoefResult](2, 3),
	bits.End(tcoefRun(false, 0, 1)),
	bits.Fork[tcoefResult](4, 5),
	bits.End(tcoefRun(false, 1, 1)),
	bits.Fork[tcoefResult](6, 7),
	bits.End(tcoefRun(false, 2, 1)),
	bits.End(tcoefRun(false, 0, 2)),
	bits.Fork[tcoefResult](28, 9), bits.Fork[tcoefResult](15, 10), bits.Fork[tcoefResult](12, 11),
	bits.End(tcoefRun(true, 0, 1)),
	bits.Fork[tcoefResult](13, 14),
	bits.End(tcoefRun(false, 4, 1)),
	bits.End(tcoefRun(false, 3, 1)),
	bits.Fork[tcoefResult](16, 23), bits.Fork[tcoefResult](17, 20), bits.Fork[tcoefResult](18, 19),
	bits.End(tcoefRun(false, 9, 1)),
	bits.End(tcoefRun(false, 8, 1)),
	bits.Fork[tcoefResult](21, 22),
	bits.End(tcoefRun(false, 7, 1)),
	bits.End(tcoefRun(false, 6, 1)),
	bits.Fork[tcoefResult](25, 24),
	bits.End(tcoefRun(false, 5, 1)),
	bits.Fork[tcoefResult](26, 27),
	bits.End(tcoefRun(false, 1, 2)),
	bits.End(tcoefRun(false, 0, 3)),
	bits.Fork[tcoefResult](52, 29), bits.Fork[tcoefResult](37, 30), bits.Fork[tcoefResult](31, 34), bits.Fork[tcoefResult](32, 33),
	bits.End(tcoefRun(true, 4, 1)),
	bits.End(tcoefRun(true, 3, 1)),
	bits.Fork[tcoefResult](35, 36),
	bits.End(tcoefRun(true, 2, 1)),
	bits.End(tcoefRun(true, 1, 1)),
	bits.Fork[tcoefResult](38, 45), bits.Fork[tcoefResult](39, 42), bits.Fork[tcoefResult](40, 41),
	bits.End(tcoefRun(true, 8, 1)),
	bits.End(tcoefRun(true, 7, 1)),
	bits.Fork[tcoefResult](43, 44),
	bits.End(tcoefRun(true, 6, 1)),
	bits.End(tcoefRun(true, 5, 1)),
	bits.Fork[tcoefResult](46, 49), bits.Fork[tcoefResult](47, 48),
	bits.End(tcoefRun(false, 12, 1)),
	bits.End(tcoefRun(false, 11, 1)),
	bits.Fork[tcoefResult](50, 51),
	bits.End(tcoefRun(false, 10, 1)),
	bits.End(tcoefRun(false, 0, 4)),
	bits.Fork[tcoefResult](90, 53), bits.Fork[tcoefResult](69, 54), bits.Fork[tcoefResult](55, 62), bits.Fork[tcoefResult](56, 59), bits.Fork[tcoefResult](57, 58),
	bits.End(tcoefRun(true, 11, 1)),
	bits.End(tcoefRun(true, 10, 1)),
	bits.Fork[tcoefResult](60, 61),
	bits.End(tcoefRun(true, 9, 1)),
	bits.End(tcoefRun(false, 14, 1)),
	bits.Fork[tcoefResult](63, 66), bits.Fork[tcoefResult](64, 65),
	bits.End(tcoefRun(false, 13, 1)),
	bits.End(tcoefRun(false, 2, 2)),
	bits.Fork[tcoefResult](67, 68),
	bits.End(tcoefRun(false, 1, 3)),
	bits.End(tcoefRun(false, 0, 5)),
	bits.Fork[tcoefResult](77, 70), bits.Fork[tcoefResult](71, 74), bits.Fork[tcoefResult](72, 73),
	bits.End(tcoefRun(true, 15, 1)),
	bits.End(tcoefRun(true, 14, 1)),
	bits.Fork[tcoefResult](75, 76),
	bits.End(tcoefRun(true, 13, 1)),
	bits.End(tcoefRun(true, 12, 1)),
	bits.Fork[tcoefResult](78, 85), bits.Fork[tcoefResult](79, 82), bits.Fork[tcoefResult](80, 81),
	bits.End(tcoefRun(false, 16, 1)),
	bits.End(tcoefRun(false, 15, 1)),
	bits.Fork[tcoefResult](83, 84),
	bits.End(tcoefRun(false, 4, 2)),
	bits.End(tcoefRun(false, 3, 2)),
	bits.Fork[tcoefResult](86, 89), bits.Fork[tcoefResult](87, 88),
	bits.End(tcoefRun(false, 0, 7)),
	bits.End(tcoefRun(false, 0, 6)),
	bits.End(tcoefRun(true, 16, 1)),
	bits.Fork[tcoefResult](124, 91), bits.Fork[tcoefResult](92, 109), bits.Fork[tcoefResult](93, 102), bits.Fork[tcoefResult](94, 99), bits.Fork[tcoefResult](95, 98), bits.Fork[tcoefResult](96, 97),
	bits.End(tcoefRun(false, 0, 9)),
	bits.End(tcoefRun(false, 0, 8)),
	bits.End(tcoefRun(true, 24, 1)),
	bits.Fork[tcoefResult](100, 101),
	bits.End(tcoefRun(true, 23, 1)),
	bits.End(tcoefRun(true, 22, 1)),
	bits.Fork[tcoefResult](103, 106), bits.Fork[tcoefResult](104, 105),
	bits.End(tcoefRun(true, 21, 1)),
	bits.End(tcoefRun(true, 20, 1)),
	bits.Fork[tcoefResult](107, 108),
	bits.End(tcoefRun(true, 19, 1)),
	bits.End(tcoefRun(true, 18, 1)),
	bits.Fork[tcoefResult](110, 117), bits.Fork[tcoefResult](111, 114), bits.Fork[tcoefResult](112, 113),
	bits.End(tcoefRun(true, 17, 1)),
	bits.End(tcoefRun(true, 0, 2)),
	bits.Fork[tcoefResult](115, 116),
	bits.End(tcoefRun(false, 22, 1)),
	bits.End(tcoefRun(false, 21, 1)),
	bits.Fork[tcoefResult](118, 121), bits.Fork[tcoefResult](119, 120),
	bits.End(tcoefRun(false, 20, 1)),
	bits.End(tcoefRun(false, 19, 1)),
	bits.Fork[tcoefResult](122, 123),
	bits.End(tcoefRun(false, 18, 1)),
	bits.End(tcoefRun(false, 17, 1)),
	bits.Fork[tcoefResult](174, 125), bits.Fork[tcoefResult](127, 126),
	bits.End(tcoefEscape),
	bits.Fork[tcoefResult](128, 143), bits.Fork[tcoefResult](129, 136), bits.Fork[tcoefResult](130, 133), bits.Fork[tcoefResult](131, 132),
	bits.End(tcoefRun(false, 0, 12)),
	bits.End(tcoefRun(false, 1, 5)),
	bits.Fork[tcoefResult](134, 135),
	bits.End(tcoefRun(false, 23, 1)),
	bits.End(tcoefRun(false, 24, 1)),
	bits.Fork[tcoefResult](137, 140), bits.Fork[tcoefResult](138, 139),
	bits.End(tcoefRun(true, 29, 1)),
	bits.End(tcoefRun(true, 30, 1)),
	bits.Fork[tcoefResult](141, 142),
	bits.End(tcoefRun(true, 31, 1)),
	bits.End(tcoefRun(true, 32, 1)),
	bits.Fork[tcoefResult](144, 159), bits.Fork[tcoefResult](145, 152), bits.Fork[tcoefResult](146, 149), bits.Fork[tcoefResult](147, 148),
	bits.End(tcoefRun(false, 1, 6)),
	bits.End(tcoefRun(false, 2, 4)),
	bits.Fork[tcoefResult](150, 151),
	bits.End(tcoefRun(false, 4, 3)),
	bits.End(tcoefRun(false, 5, 3)),
	bits.Fork[tcoefResult](153, 156), bits.Fork[tcoefResult](154, 155),
	bits.End(tcoefRun(false, 6, 3)),
	bits.End(tcoefRun(false, 10, 2)),
	bits.Fork[tcoefResult](157, 158),
	bits.End(tcoefRun(false, 25, 1)),
	bits.End(tcoefRun(false, 26, 1)),
	bits.Fork[tcoefResult](160, 167), bits.Fork[tcoefResult](161, 164), bits.Fork[tcoefResult](162, 163),
	bits.End(tcoefRun(true, 33, 1)),
	bits.End(tcoefRun(true, 34, 1)),
	bits.Fork[tcoefResult](165, 166),
	bits.End(tcoefRun(true, 35, 1)),
	bits.End(tcoefRun(true, 36, 1)),
	bits.Fork[tcoefResult](168, 171), bits.Fork[tcoefResult](169, 170),
	bits.End(tcoefRun(true, 37, 1)),
	bits.End(tcoefRun(true, 38, 1)),
	bits.Fork[tcoefResult](172, 173),
	bits.End(tcoefRun(true, 39, 1)),
	bits.End(tcoefRun(true, 40, 1)),
	bits.Fork[tcoefResult](190, 175), bits.Fork[tcoefResult](176, 183), bits.Fork[tcoefResult](177, 180), bits.Fork[tcoefResult](178, 179),
	bits.End(tcoefRun(false, 9, 2)),
	bits.End(tcoefRun(false, 8, 2)),
	bits.Fork[tcoefResult](181, 182),
	bits.End(tcoefRun(false, 7, 2)),
	bits.End(tcoefRun(false, 6, 2)),
	bits.Fork[tcoefResult](184, 187), bits.Fork[tcoefResult](185, 186),
	bits.End(tcoefRun(false, 5, 2)),
	bits.End(tcoefRun(false, 3, 3)),
	bits.Fork[tcoefResult](188, 189),
	bits.End(tcoefRun(false, 2, 3)),
	bits.End(tcoefRun(false, 1, 4)),
	bits.Fork[tcoefResult](198, 191), bits.Fork[tcoefResult](192, 195), bits.Fork[tcoefResult](193, 194),
	bits.End(tcoefRun(true, 28, 1)),
	bits.End(tcoefRun(true, 27, 1)),
	bits.Fork[tcoefResult](196, 197),
	bits.End(tcoefRun(true, 26, 1)),
	bits.End(tcoefRun(true, 25, 1)),
	bits.Fork[tcoefResult](206, 199), bits.Fork[tcoefResult](200, 203), bits.Fork[tcoefResult](201, 202),
	bits.End(tcoefRun(true, 1, 2)),
	bits.End(tcoefRun(true, 0, 3)),
	bits.Fork[tcoefResult](204, 205),
	bits.End(tcoefRun(false, 0, 11)),
	bits.End(tcoefRun(false, 0, 10)),
	bits.End(tcoefNone),
}
