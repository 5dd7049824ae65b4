package netrange_test

import (
	"encoding/json"
	"testing"

	"github.com/usnistgov/ndn-autoreg/core/netrange"
	"github.com/usnistgov/ndn-autoreg/core/testenv"
	"go.uber.org/multierr"
	"inet.af/netaddr"
)

func TestParse(t *testing.T) {
	assert, _ := testenv.MakeAR(t)

	tests := []struct {
		input  string
		ok     bool
		family netrange.Family
		output string // "" indicates same as input
	}{
		{"192.0.2.0/24", true, netrange.FamilyIPv4, ""},
		{"192.0.2.77/24", true, netrange.FamilyIPv4, "192.0.2.0/24"},
		{"192.0.2.1", true, netrange.FamilyIPv4, "192.0.2.1/32"},
		{"0.0.0.0/0", true, netrange.FamilyIPv4, ""},
		{"2001:db8::/32", true, netrange.FamilyIPv6, ""},
		{"::1", true, netrange.FamilyIPv6, "::1/128"},
		{" 10.0.0.0/8 ", true, netrange.FamilyIPv4, "10.0.0.0/8"},
		{"192.0.2.0/33", false, 0, ""},
		{"2001:db8::/129", false, 0, ""},
		{"192.0.2.0/", false, 0, ""},
		{"example.net/24", false, 0, ""},
		{"", false, 0, ""},
	}
	for _, tt := range tests {
		r, e := netrange.Parse(tt.input)
		if !tt.ok {
			assert.Error(e, tt.input)
			continue
		}
		if assert.NoError(e, tt.input) {
			output := tt.output
			if output == "" {
				output = tt.input
			}
			assert.Equal(output, r.String(), tt.input)
			assert.Equal(tt.family, r.Family(), tt.input)
		}
	}
}

func TestContains(t *testing.T) {
	assert, _ := testenv.MakeAR(t)

	r4 := netrange.MustParse("192.0.2.0/24")
	assert.True(r4.Contains(netaddr.MustParseIP("192.0.2.5")))
	assert.False(r4.Contains(netaddr.MustParseIP("192.0.3.5")))
	assert.False(r4.Contains(netaddr.MustParseIP("::ffff:192.0.2.5")))
	assert.False(r4.Contains(netaddr.IP{}))

	r6 := netrange.MustParse("2001:db8::/32")
	assert.True(r6.Contains(netaddr.MustParseIP("2001:db8::1")))
	assert.False(r6.Contains(netaddr.MustParseIP("192.0.2.5")))

	max4, max6 := netrange.MaxRangeV4(), netrange.MaxRangeV6()
	assert.Equal("0.0.0.0/0", max4.String())
	assert.Equal("::/0", max6.String())
	assert.True(max4.Contains(netaddr.MustParseIP("203.0.113.9")))
	assert.False(max4.Contains(netaddr.MustParseIP("2001:db8::1")))
	assert.True(max6.Contains(netaddr.MustParseIP("2001:db8::1")))
	assert.False(max6.Contains(netaddr.MustParseIP("203.0.113.9")))

	var zero netrange.Range
	assert.False(zero.Valid())
	assert.False(zero.Contains(netaddr.MustParseIP("192.0.2.5")))
	assert.Equal(netrange.FamilyInvalid, zero.Family())

	list := netrange.List{r4, r6}
	assert.True(list.Contains(netaddr.MustParseIP("192.0.2.200")))
	assert.True(list.Contains(netaddr.MustParseIP("2001:db8:1::1")))
	assert.False(list.Contains(netaddr.MustParseIP("198.51.100.1")))
	assert.False(netrange.List{}.Contains(netaddr.MustParseIP("192.0.2.200")))
	assert.Equal([]string{"192.0.2.0/24", "2001:db8::/32"}, list.Strings())
}

func TestText(t *testing.T) {
	assert, require := testenv.MakeAR(t)

	var obj struct {
		Ranges netrange.List `json:"ranges"`
	}
	require.NoError(json.Unmarshal([]byte(`{"ranges":["192.0.2.9/24","::1"]}`), &obj))
	assert.Equal([]string{"192.0.2.0/24", "::1/128"}, obj.Ranges.Strings())

	j, e := json.Marshal(obj)
	require.NoError(e)
	assert.Equal(`{"ranges":["192.0.2.0/24","::1/128"]}`, string(j))

	assert.Error(json.Unmarshal([]byte(`{"ranges":["bogus"]}`), &obj))

	list, e := netrange.ParseList([]string{"10.0.0.0/8", "fd00::/8"})
	require.NoError(e)
	assert.Len(list, 2)
	list, e = netrange.ParseList([]string{"10.0.0.0/99", "10.0.0.0/8", "bogus"})
	assert.Len(multierr.Errors(e), 2)
	assert.ErrorContains(e, `"10.0.0.0/99"`)
	assert.ErrorContains(e, `"bogus"`)
	assert.Equal([]string{"10.0.0.0/8"}, list.Strings())
}
