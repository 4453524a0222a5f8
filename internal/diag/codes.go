package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005
	LexBadRawString             Code = 1006
	LexBadLifetime              Code = 1007
	LexIdentNotNFC              Code = 1008

	// Синтаксические
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynUnclosedDelimiter   Code = 2002
	SynUnexpectedCloser    Code = 2003
	SynMismatchedDelimiter Code = 2004
	SynExpectSemicolon     Code = 2005
	SynExpectIdentifier    Code = 2006
	SynExpectItem          Code = 2007
	SynExpectBody          Code = 2008
	SynExpectAttrBracket   Code = 2009
	SynExpectPath          Code = 2010
	SynBadAttrInput        Code = 2011
	SynExpectMacroDelim    Code = 2012
	SynAttrWithoutItem     Code = 2013
	SynInnerAttrPosition   Code = 2014
	SynExpectExpression    Code = 2015

	// Ввод-вывод
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number literal",
	LexUnterminatedChar:         "Unterminated character literal",
	LexBadRawString:             "Malformed raw string literal",
	LexBadLifetime:              "Malformed lifetime or label",
	LexIdentNotNFC:              "Identifier is not in NFC form",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynUnexpectedCloser:         "Unexpected closing delimiter",
	SynMismatchedDelimiter:      "Mismatched closing delimiter",
	SynExpectSemicolon:          "Expected ';'",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectItem:               "Expected item",
	SynExpectBody:               "Expected body",
	SynExpectAttrBracket:        "Expected '[' after '#'",
	SynExpectPath:               "Expected path",
	SynBadAttrInput:             "Malformed attribute input",
	SynExpectMacroDelim:         "Expected macro delimiter",
	SynAttrWithoutItem:          "Attribute is not followed by an item",
	SynInnerAttrPosition:        "Inner attribute is not permitted here",
	SynExpectExpression:         "Expected expression",
	IOLoadFileError:             "I/O load file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
