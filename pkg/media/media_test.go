package media

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		expected Category
	}{
		{"clip.mp4", Videos},
		{"CLIP.MKV", Videos},
		{"holiday.jpeg", Images},
		{"report.final.PDF", Documents},
		{"song.flac", Audio},
		{"backup.tar.gz", Archives},
		{"setup.exe", Programs},
		{"dump.sql", Data},
		{"index.html", Web},
		{"README", Other},
		{"weird.xyz", Other},
		{"", Other},
		{".hidden", Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.name))
		})
	}
}

func TestClassifyIsTotal(t *testing.T) {
	known := make(map[Category]bool, len(Categories))
	for _, c := range Categories {
		known[c] = true
	}
	for _, name := range []string{"a.b.c", "no-ext", "x.", "x.7z", "ü.mp3"} {
		assert.True(t, known[Classify(name)], name)
	}
	assert.Equal(t, Other, Categories[len(Categories)-1])
}

func TestExtFromMIME(t *testing.T) {
	tests := []struct {
		mime     string
		expected string
	}{
		{"video/mp4", "mp4"},
		{"image/jpeg", "jpg"},
		{"video/quicktime", "mov"},
		{"application/pdf", "pdf"},
		{"garbage", "bin"},
		{"", "bin"},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtFromMIME(tt.mime))
		})
	}
}

func TestResolve(t *testing.T) {
	date := time.Date(2024, 3, 9, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))

	tests := []struct {
		name     string
		msg      Message
		ok       bool
		expected Target
	}{
		{
			name:     "photo uses utc date",
			msg:      Message{ID: 42, Date: date, Media: Photo{}},
			ok:       true,
			expected: Target{Category: Images, FileName: "photo_20240310_42.jpg"},
		},
		{
			name:     "document keeps its name",
			msg:      Message{ID: 7, Date: date, Media: Document{FileName: "notes.txt", MIMEType: "text/plain"}},
			ok:       true,
			expected: Target{Category: Documents, FileName: "notes.txt"},
		},
		{
			name:     "document without name uses mime",
			msg:      Message{ID: 8, Date: date, Media: Document{MIMEType: "video/quicktime"}},
			ok:       true,
			expected: Target{Category: Videos, FileName: "file_20240310_8.mov"},
		},
		{
			name:     "document without name or mime",
			msg:      Message{ID: 5, Date: date, Media: Document{}},
			ok:       true,
			expected: Target{Category: Other, FileName: "file_20240310_5.bin"},
		},
		{
			name:     "video attribute wins over extension",
			msg:      Message{ID: 9, Date: date, Media: Document{FileName: "clip.bin", MIMEType: "application/octet-stream", Video: true}},
			ok:       true,
			expected: Target{Category: Videos, FileName: "clip.bin"},
		},
		{
			name:     "round video keeps extension category",
			msg:      Message{ID: 10, Date: date, Media: Document{MIMEType: "video/mp4", Video: true, Round: true}},
			ok:       true,
			expected: Target{Category: Videos, FileName: "file_20240310_10.mp4"},
		},
		{
			name:     "round video with unknown extension",
			msg:      Message{ID: 11, Date: date, Media: Document{FileName: "note.dat", Video: true, Round: true}},
			ok:       true,
			expected: Target{Category: Other, FileName: "note.dat"},
		},
		{
			name:     "path components are stripped",
			msg:      Message{ID: 12, Date: date, Media: Document{FileName: "../../etc/passwd.txt"}},
			ok:       true,
			expected: Target{Category: Documents, FileName: "passwd.txt"},
		},
		{
			name: "unsupported media",
			msg:  Message{ID: 13, Date: date, Media: Unsupported{Kind: "poll"}},
		},
		{
			name: "no media",
			msg:  Message{ID: 14, Date: date},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, ok := Resolve(tt.msg)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, target)
		})
	}
}

func TestSafeFileName(t *testing.T) {
	assert.Equal(t, "a.txt", SafeFileName("a.txt"))
	assert.Equal(t, "b.txt", SafeFileName(`dir\b.txt`))
	assert.Equal(t, "", SafeFileName(""))
	assert.Equal(t, "", SafeFileName(".."))
	assert.Equal(t, "", SafeFileName("/"))
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, All, f)

	f, err = ParseFilter("Videos")
	require.NoError(t, err)
	assert.True(t, f.Allows(Videos))
	assert.False(t, f.Allows(Images))

	assert.True(t, All.Allows(Other))

	_, err = ParseFilter("programs")
	assert.Error(t, err)
}

func TestCategoryIndex(t *testing.T) {
	assert.Len(t, Categories, NumCategories)
	for i, c := range Categories {
		assert.Equal(t, i, c.Index())
	}
	assert.Equal(t, NumCategories-1, Other.Index())
	assert.Equal(t, -1, Category("stickers").Index())
}
