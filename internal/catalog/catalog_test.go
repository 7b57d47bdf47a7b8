package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMedicines(t *testing.T) {
	csv := `Name,Price,Manufacturer,Type,Pack_Size,Composition,Description,Side_Effects,Is_Discontinued
Dolo 650 Tablet,30.5,Micro Labs,allopathy,strip of 15 tablets,Paracetamol (650mg),Fever and pain relief,Nausea | Rash,false
  ,10,Nobody,,,,,,
"Ashwagandha Churna",₹120,Dabur,ayurvedic,100 g,Withania somnifera,,,TRUE
`
	meds, err := ReadMedicines(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, meds, 2)

	assert.Equal(t, "Dolo 650 Tablet", meds[0].Name)
	assert.Equal(t, 30.5, meds[0].Price)
	assert.Equal(t, "strip of 15 tablets", meds[0].PackSize)
	assert.Equal(t, []string{"Nausea", "Rash"}, []string(meds[0].SideEffects))
	assert.False(t, meds[0].IsDiscontinued)

	assert.Equal(t, 120.0, meds[1].Price)
	assert.True(t, meds[1].IsDiscontinued)
	assert.Empty(t, meds[1].SideEffects)
}

func TestReadMedicinesErrors(t *testing.T) {
	_, err := ReadMedicines(strings.NewReader("title,price\nx,1\n"))
	assert.ErrorContains(t, err, "no name column")

	_, err = ReadMedicines(strings.NewReader("name,price\nx,cheap\n"))
	assert.ErrorContains(t, err, "line 2")

	meds, err := ReadMedicines(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, meds)
}

func TestReadDoctors(t *testing.T) {
	roster := `[
	  {"name":"Dr. Meera Iyer","specialty":"ENT Specialist","experience":"7 years",
	   "email":" Meera.Iyer@Healthcare.com ","phone":"+91 90000 00001","available":false}
	]`
	docs, err := ReadDoctors(strings.NewReader(roster))
	require.NoError(t, err)
	require.Len(t, docs, 1)

	d := docs[0]
	assert.Equal(t, "meera.iyer@healthcare.com", d.Email)
	assert.False(t, d.Available)
	assert.Equal(t, 4.5, d.Rating)
	assert.Equal(t, 500.0, d.ConsultationFee)
}

func TestReadDoctorsRejectsBadRecords(t *testing.T) {
	cases := map[string]string{
		"missing phone": `[{"name":"A","specialty":"B","experience":"1 year","email":"a@b.com"}]`,
		"bad email":     `[{"name":"A","specialty":"B","experience":"1 year","email":"nope","phone":"1"}]`,
		"bad rating":    `[{"name":"A","specialty":"B","experience":"1 year","email":"a@b.com","phone":"1","rating":7}]`,
		"duplicate": `[{"name":"A","specialty":"B","experience":"1 year","email":"a@b.com","phone":"1"},
		               {"name":"C","specialty":"D","experience":"2 years","email":"A@b.com","phone":"2"}]`,
		"not json": `{`,
	}
	for name, roster := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadDoctors(strings.NewReader(roster))
			assert.Error(t, err)
		})
	}
}

func TestSampleDoctors(t *testing.T) {
	docs := SampleDoctors()
	require.Len(t, docs, 6)

	available := 0
	for _, d := range docs {
		if d.Available {
			available++
		}
	}
	assert.Equal(t, 5, available)
	assert.Equal(t, "Dr. Priya Sharma", docs[0].Name)
	assert.Equal(t, "arun.nair@healthcare.com", docs[5].Email)
}
