package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyreach/ssot-cli/internal/model"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_CSVGroupsBySlug(t *testing.T) {
	path := writeTempCSV(t, `organization_slug,organization_name,source_dataset,source_record_id,province,website
aero-school,Aero School,Reachout,r-10,,https://reachout.example
aero-school,Aero School,SACAA Cleaned,s-20,Gauteng,
zulu-air,Zulu Air,CRM Export,z-1,,
`)
	groups, err := Load(path, "")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.Len(t, groups["aero-school"], 2)
	require.Len(t, groups["zulu-air"], 1)

	first := groups["aero-school"][0]
	assert.Equal(t, "Aero School", first.OrganizationName)
	assert.Equal(t, "Reachout", first.SourceDataset)
	assert.Equal(t, "r-10", first.SourceRecordID)
	assert.Equal(t, "https://reachout.example", first.Website)
	assert.Equal(t, "Gauteng", groups["aero-school"][1].Province)
}

func TestLoad_SlugDerivedFromName(t *testing.T) {
	path := writeTempCSV(t, `organization_name,source_dataset,source_record_id
Aéro École (Pty),Reachout,r-1
`)
	groups, err := Load(path, "")
	require.NoError(t, err)
	require.Contains(t, groups, "aero-ecole-pty")
}

func TestLoad_SluglessNamelessRowSkipped(t *testing.T) {
	path := writeTempCSV(t, `organization_slug,organization_name,source_dataset,source_record_id
,,"Reachout",r-1
aero-school,Aero School,Reachout,r-2
`)
	groups, err := Load(path, "")
	require.NoError(t, err)
	assert.Len(t, groups, 1)
	assert.Len(t, groups["aero-school"], 1)
}

func TestLoad_BlankSentinelsCleaned(t *testing.T) {
	path := writeTempCSV(t, `organization_slug,organization_name,source_dataset,source_record_id,province,notes
aero-school,Aero School,Reachout,r-1,n/a,  -
`)
	groups, err := Load(path, "")
	require.NoError(t, err)
	row := groups["aero-school"][0]
	assert.Equal(t, "", row.Province)
	assert.Equal(t, "", row.Notes)
}

func TestLoad_ContactsZipped(t *testing.T) {
	path := writeTempCSV(t, `organization_slug,source_dataset,source_record_id,contact_names,contact_roles,contact_emails,contact_phones
aero-school,Reachout,r-1,Jane Doe;Ops Desk,Ops,jane@x.example;ops@x.example,+27 11 555 0001
`)
	groups, err := Load(path, "")
	require.NoError(t, err)
	row := groups["aero-school"][0]
	require.Len(t, row.Contacts, 2)
	assert.Equal(t, model.Contact{
		Name: "Jane Doe", Role: "Ops", Email: "jane@x.example", Phone: "+27 11 555 0001",
	}, row.Contacts[0])
	assert.Equal(t, model.Contact{
		Name: "Ops Desk", Email: "ops@x.example",
	}, row.Contacts[1])
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.parquet")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	_, err := Load(path, "")
	assert.Error(t, err)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")
	_, err := Load(path, "")
	assert.Error(t, err)
}

func TestZipContacts_AllEmptySlotSkipped(t *testing.T) {
	contacts := zipContacts("Jane;;Bob", "", "", "")
	require.Len(t, contacts, 2)
	assert.Equal(t, "Jane", contacts[0].Name)
	assert.Equal(t, "Bob", contacts[1].Name)
}

func TestZipContacts_LongestListWins(t *testing.T) {
	contacts := zipContacts("Jane", "", "jane@x.example;ops@x.example;sales@x.example", "")
	require.Len(t, contacts, 3)
	assert.Equal(t, "Jane", contacts[0].Name)
	assert.Equal(t, "", contacts[2].Name)
	assert.Equal(t, "sales@x.example", contacts[2].Email)
}

func TestLoadIntents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intents.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`aero-school:
  score: 0.7
  signal_types:
    - website_visit
    - demo_request
`), 0o644))

	intents, err := LoadIntents(path)
	require.NoError(t, err)
	require.Contains(t, intents, "aero-school")
	assert.Equal(t, 0.7, intents["aero-school"].Score)
	assert.Equal(t, []string{"website_visit", "demo_request"}, intents["aero-school"].SignalTypes)
}

func TestLoadIntents_EmptyPath(t *testing.T) {
	intents, err := LoadIntents("")
	require.NoError(t, err)
	assert.Nil(t, intents)
}
