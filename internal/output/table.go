package output

import (
	"io"
	"strconv"
	"strings"

	"github.com/rodaine/table"

	"github.com/ericfisherdev/passop/internal/domain/model"
)

// MaskPassword hides a password behind one asterisk per character.
func MaskPassword(p string) string {
	return strings.Repeat("*", len([]rune(p)))
}

// RenderCredentials writes creds as a numbered table. Numbers start at 1 and
// are the positions the edit, delete and copy commands take. Passwords are
// masked unless show is set.
func RenderCredentials(w io.Writer, creds []model.Credential, show bool) {
	if len(creds) == 0 {
		_, _ = io.WriteString(w, "No passwords to show\n")
		return
	}

	tbl := table.New("#", "Site", "Username", "Password").WithWriter(w)
	for i, c := range creds {
		password := c.Password
		if !show {
			password = MaskPassword(password)
		}
		tbl.AddRow(strconv.Itoa(i+1), c.Site, c.Username, password)
	}
	tbl.Print()
}
