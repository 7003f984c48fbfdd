package lexer

const (
	_DDG = 0x01 // decimal digit
	_ODG = 0x02 // octal digit
	_XDG = 0x04 // hexadecimal digits or letters
	_PHA = 0x08 // letters and _
	_SPC = 0x10
	_PUN = 0x20 // punctuation
	_NLN = 0x40
	_CMT = 0x80  // comment
	_SQU = 0x100 // single quotation mark
	_DQU = 0x200 // double quotation mark
	_LIM = 0xFF
)

const (
	_HT = _SPC
	_VT = _SPC
	_FF = _SPC
	_CR = _SPC
	_LF = _NLN
)

var charList = [256]int{
	0, 0, 0, 0, 0, 0, 0, 0,

	0, _HT, _LF, _VT, _FF, _CR, 0, 0,

	0, 0, 0, 0, 0, 0, 0, 0,

	0, 0, 0, 0, 0, 0, 0, 0,

	_SPC, _PUN, _DQU, _CMT, _PUN, _PUN, _PUN, _SQU,

	_PUN, _PUN, _PUN, _PUN, _PUN, _PUN, _PUN, _PUN,

	_ODG | _DDG | _XDG, _ODG | _DDG | _XDG, _ODG | _DDG | _XDG,
	_ODG | _DDG | _XDG, _ODG | _DDG | _XDG, _ODG | _DDG | _XDG,
	_ODG | _DDG | _XDG, _ODG | _DDG | _XDG,

	_DDG | _XDG, _DDG | _XDG, _PUN, _PUN, _PUN, _PUN, _PUN, _PUN,

	_PUN, _PHA | _XDG, _PHA | _XDG, _PHA | _XDG, _PHA | _XDG, _PHA | _XDG, _PHA | _XDG, _PHA,

	_PHA, _PHA, _PHA, _PHA, _PHA, _PHA, _PHA, _PHA,

	_PHA, _PHA, _PHA, _PHA, _PHA, _PHA, _PHA, _PHA,

	_PHA, _PHA, _PHA, _PUN, _PUN, _PUN, _PUN, _PHA,

	_PUN, _PHA | _XDG, _PHA | _XDG, _PHA | _XDG, _PHA | _XDG, _PHA | _XDG, _PHA | _XDG, _PHA,

	_PHA, _PHA, _PHA, _PHA, _PHA, _PHA, _PHA, _PHA,

	_PHA, _PHA, _PHA, _PHA, _PHA, _PHA, _PHA, _PHA,

	_PHA, _PHA, _PHA, _PUN, _PUN, _PUN, _PUN, 0,
}

func isEOF(c int) bool {
	return c == eof
}

// '\t', ' ', '\v', '\f', '\r'
func isSpace(c int) bool {
	return c >= 0 && (charList[c&_LIM]&_SPC) != 0
}

func isDigit(c int) bool {
	return c >= 0 && (charList[c&_LIM]&_DDG) != 0
}

func isXdigit(c int) bool {
	return c >= 0 && (charList[c&_LIM]&_XDG) != 0
}

func isAlpha(c int) bool {
	return c >= 0 && (charList[c&_LIM]&_PHA) != 0
}

func isAlnum(c int) bool {
	return c >= 0 && (charList[c&_LIM]&(_PHA|_DDG)) != 0
}

func isNewline(c int) bool {
	return c >= 0 && (charList[c&_LIM]&_NLN) != 0
}

// Is it #
func isComment(c int) bool {
	return c >= 0 && (charList[c&_LIM]&_CMT) != 0
}

func isQuotation(c int) bool {
	return c >= 0 && (charList[c&_LIM]&(_SQU|_DQU)) != 0
}

func isPunct(c int) bool {
	return c >= 0 && (charList[c&_LIM]&_PUN) != 0
}
