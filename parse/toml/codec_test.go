package toml

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCodecDecodeEncode(t *testing.T) {
	codec := NewCodec(nil)
	root, err := codec.Decode([]byte("b = 2\na = 1\n"))
	require.NoError(t, err)
	out, err := codec.Encode(root)
	require.NoError(t, err)
	require.Equal(t, "a=1\nb=2\n", out)
}

func TestCodecStrictIsSharedBothWays(t *testing.T) {
	codec := NewCodec(&Options{StrictArrays: true})

	_, err := codec.Decode([]byte("a = [1, \"x\"]\n"))
	require.Error(t, err)
	require.Equal(t, HeterogenousArray, err.(*Error).Kind)

	// A tree built by a permissive parse still fails strict encoding.
	loose, err := Parse([]byte("a = [1, \"x\"]\n"), nil)
	require.NoError(t, err)
	_, err = codec.Encode(loose)
	require.Error(t, err)
	require.Equal(t, HeterogenousArray, err.(*Error).Kind)
}

func TestParseReader(t *testing.T) {
	root, err := ParseReader(strings.NewReader("a = 1\n"), nil)
	require.NoError(t, err)
	n, ok := Get(root, "a")
	require.True(t, ok)
	require.Equal(t, int64(1), MustInt(n))
}

func TestInflateDatetimeToTime(t *testing.T) {
	opts := &Options{
		InflateDatetime: func(lit string, kind ValueKind) any {
			parsed, err := time.Parse(time.RFC3339Nano, lit)
			if err != nil {
				return lit
			}
			return parsed
		},
	}
	root, err := Parse([]byte("d = 1979-05-27T07:32:00Z\n"), opts)
	require.NoError(t, err)
	d, _ := Get(root, "d")
	carried, ok := d.(*Value).V.(time.Time)
	require.True(t, ok)
	require.Equal(t, 1979, carried.Year())

	// A time.Time carrier still encodes.
	out, err := ToTOML(root, nil)
	require.NoError(t, err)
	require.Equal(t, "d=1979-05-27T07:32:00Z\n", out)
}

func TestErrKindOf(t *testing.T) {
	_, err := Parse([]byte("a = 042\n"), nil)
	kind, ok := ErrKindOf(err)
	require.True(t, ok)
	require.Equal(t, InvalidNumber, kind)
	require.Equal(t, "toml:1: malformed number \"042\"", err.Error())

	_, ok = ErrKindOf(nil)
	require.False(t, ok)
}

func TestEqualSemantics(t *testing.T) {
	a := mustParse(t, "f = nan\nd = 1979-05-27T07:32:00Z\n")
	b := mustParse(t, "f = nan\nd = 1979-05-27 07:32:00z\n")
	require.True(t, Equal(a, b))

	c := mustParse(t, "f = 1.0\n")
	require.False(t, Equal(a, c))

	require.True(t, Equal(NewInteger(5), NewInteger(5)))
	require.False(t, Equal(NewInteger(5), NewFloat(5)))
}

func TestConstructorsRejectViolations(t *testing.T) {
	_, err := NewFiniteFloat(math.Inf(1))
	require.Error(t, err)
	_, err = NewFiniteFloat(1.5)
	require.NoError(t, err)

	_, err = NewDatetime("not a date", KindLocalDate)
	require.Error(t, err)
	require.Equal(t, InvalidDateTime, err.(*Error).Kind)

	_, err = NewDatetime("1979-05-27", KindInteger)
	require.Error(t, err)
}

func TestUniqueKeysInvariant(t *testing.T) {
	root := mustParse(t, "a = 1\n[t]\nb = 2\n[[aot]]\nc = 3\n")
	var walkTables func(*Table)
	walkTables = func(tbl *Table) {
		seen := map[string]bool{}
		for k := range tbl.Items {
			require.False(t, seen[k])
			seen[k] = true
		}
		for _, n := range tbl.Items {
			if sub, ok := n.(*Table); ok {
				walkTables(sub)
			}
		}
	}
	walkTables(root)
}
