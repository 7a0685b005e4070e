// Package render draws an odontogram: background chart image plus one symbol
// per finding, colored by intent. Symbol choice is keyed off the catalog
// code and category only, never off free-text names.
package render

import (
	"image/color"

	"github.com/odontosys/odontosys/internal/catalog"
	"github.com/odontosys/odontosys/internal/odontogram"
)

// Symbol identifies the mark drawn for a finding.
type Symbol int

const (
	SymbolCross        Symbol = iota // large X, extraction or absent tooth
	SymbolCaries                     // small filled circle
	SymbolCrown                      // unfilled ring
	SymbolImplant                    // "IMP" text glyph
	SymbolRestoration                // small filled square
	SymbolRootCanal                  // vertical line
	SymbolFracture                   // diagonal line
	SymbolResidualRoot               // "RR" text glyph
	SymbolProsthesis                 // two horizontal parallel lines
	SymbolFallback                   // filled circle with contrasting ring
)

// Geometry constants for each symbol, in canvas pixels.
const (
	crossHalfDiagonal  = 25.0
	crossStrokeWidth   = 5.0
	cariesRadius       = 6.0
	crownRadius        = 22.0
	crownStrokeWidth   = 4.0
	squareHalfSide     = 6.0
	rootCanalHalfLen   = 28.0
	rootCanalStroke    = 4.0
	fractureHalfLen    = 18.0
	fractureStroke     = 4.0
	prosthesisHalfLen  = 20.0
	prosthesisOffset   = 5.0
	fallbackRadius     = 8.0
	fallbackRingStroke = 2.0
)

// Intent colors.
var (
	colorPlanned  = color.RGBA{R: 0xFF, A: 0xFF}
	colorExisting = color.RGBA{B: 0xFF, A: 0xFF}
)

// intentColor returns the draw color for a finding's intent.
func intentColor(intent odontogram.Intent) color.RGBA {
	if intent == odontogram.IntentPlanned {
		return colorPlanned
	}
	return colorExisting
}

// Code sets per symbol rule. Rules are evaluated in fixed priority order;
// the first match wins.
var (
	crossCodes        = map[string]bool{"EXO": true, "AUS": true}
	cariesCodes       = map[string]bool{"CAR": true}
	crownCodes        = map[string]bool{"CC": true, "CMC": true}
	implantCodes      = map[string]bool{"IMP": true}
	rootCanalCodes    = map[string]bool{"TC": true, "PC": true, "PP": true}
	fractureCodes     = map[string]bool{"FC": true, "FR": true}
	residualRootCodes = map[string]bool{"RR": true}
	prosthesisCodes   = map[string]bool{"PR": true, "PT": true}
)

// classify picks the symbol for a code and category pair. The priority order
// is fixed: cross, caries, crown, implant, restoration, root canal, fracture,
// residual root, prosthesis, fallback.
func classify(code string, category catalog.Category) Symbol {
	switch {
	case crossCodes[code]:
		return SymbolCross
	case cariesCodes[code]:
		return SymbolCaries
	case crownCodes[code]:
		return SymbolCrown
	case implantCodes[code]:
		return SymbolImplant
	case category == catalog.CategoryRestoration:
		return SymbolRestoration
	case rootCanalCodes[code]:
		return SymbolRootCanal
	case fractureCodes[code]:
		return SymbolFracture
	case residualRootCodes[code]:
		return SymbolResidualRoot
	case prosthesisCodes[code]:
		return SymbolProsthesis
	default:
		return SymbolFallback
	}
}

// SymbolForCode returns the symbol for a treatment code, resolving its
// category through the catalog. Unknown codes draw the fallback symbol.
func SymbolForCode(code string) Symbol {
	if entry, ok := catalog.FindByCode(code); ok {
		return classify(entry.Code, entry.Category)
	}
	return classify(code, "")
}
