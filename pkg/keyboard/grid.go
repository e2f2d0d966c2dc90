package keyboard

import (
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/keytrace/swipepath/pkg/errors"
	"github.com/keytrace/swipepath/pkg/geom"
)

// Sample is one raw observation of a key: the center of one grid cell the
// key occupies. Keys wider than one cell produce several samples.
type Sample struct {
	Key string
	At  geom.Point
}

// gapKey marks an empty cell in a grid row.
const gapKey = "_"

var (
	gridLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "Float", Pattern: `\d+\.\d*`},
		{Name: "Int", Pattern: `\d+`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Star", Pattern: `\*`},
		{Name: "Ident", Pattern: `[^\s"*#\d][^\s"*#]*`},
	})

	gridParser = participle.MustBuild[gridFile](
		participle.Lexer(gridLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.Unquote("String"),
	)
)

// gridFile is the AST of a grid description:
//
//	grid <columns> <rows> [scale <sx> <sy>]
//	row <cell>...
//
// where a cell is a key name (bare or quoted) with an optional "*<span>"
// suffix, and "_" is an empty cell.
type gridFile struct {
	Columns int        `parser:"Newline* 'grid' @Int"`
	Rows    int        `parser:"@Int"`
	Scale   *gridScale `parser:"( 'scale' @@ )? Newline+"`
	Lines   []*gridRow `parser:"@@*"`
}

type gridScale struct {
	X float64 `parser:"@(Float | Int)"`
	Y float64 `parser:"@(Float | Int)"`
}

type gridRow struct {
	Pos   lexer.Position
	Cells []*gridCell `parser:"'row' @@+ Newline+"`
}

type gridCell struct {
	Key  string `parser:"@(Ident | String)"`
	Span *int   `parser:"( Star @Int )?"`
}

func (c *gridCell) span() int {
	if c.Span == nil {
		return 1
	}
	return *c.Span
}

// ParseGrid reads a grid description and returns one sample per occupied
// cell, in row-major order. Cell centers are normalized to the unit square
// and then multiplied by the optional scale factors.
//
// name is used in error positions only.
func ParseGrid(name string, r io.Reader) ([]Sample, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGrid, err, "read grid %s", name)
	}
	// Rows are newline-terminated in the grammar.
	ast, err := gridParser.ParseString(name, string(data)+"\n")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGrid, err, "parse grid %s", name)
	}
	return ast.samples(name)
}

func (g *gridFile) samples(name string) ([]Sample, error) {
	if g.Columns <= 0 || g.Rows <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "%s: grid must have positive dimensions, got %dx%d", name, g.Columns, g.Rows)
	}
	if len(g.Lines) != g.Rows {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "%s: grid declares %d rows but has %d", name, g.Rows, len(g.Lines))
	}
	sx, sy := 1.0, 1.0
	if g.Scale != nil {
		sx, sy = g.Scale.X, g.Scale.Y
	}
	if sx <= 0 || sy <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "%s: scale factors must be positive", name)
	}

	cellW := sx / float64(g.Columns)
	cellH := sy / float64(g.Rows)

	var out []Sample
	for row, line := range g.Lines {
		col := 0
		for _, cell := range line.Cells {
			span := cell.span()
			if span <= 0 {
				return nil, errors.New(errors.ErrCodeInvalidGrid, "%s: key %q has non-positive span %d", line.Pos, cell.Key, span)
			}
			if cell.Key != gapKey {
				if err := errors.ValidateKeyName(cell.Key); err != nil {
					return nil, errors.Wrap(errors.ErrCodeInvalidGrid, err, "%s", line.Pos)
				}
				for i := 0; i < span; i++ {
					out = append(out, Sample{
						Key: cell.Key,
						At:  geom.Pt((float64(col+i)+0.5)*cellW, (float64(row)+0.5)*cellH),
					})
				}
			}
			col += span
		}
		if col != g.Columns {
			return nil, errors.New(errors.ErrCodeInvalidGrid, "%s: row %d spans %d cells, want %d", line.Pos, row, col, g.Columns)
		}
	}
	return out, nil
}
