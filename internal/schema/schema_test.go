package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ans-dados/ans-dados/internal/models"
)

func TestPickColumn(t *testing.T) {
	t.Run("accent and case insensitive", func(t *testing.T) {
		for _, header := range []string{"Código  Conta", "codigo_conta", "CÓDIGO CONTA"} {
			name, ok := PickColumn(RoleCdContaContabil, []string{"REG_ANS", header})
			assert.True(t, ok, "header %q should resolve", header)
			assert.Equal(t, header, name)
		}
	})

	t.Run("substring match on renamed layouts", func(t *testing.T) {
		name, ok := PickColumn(RoleCdContaContabil, []string{"CD_CONTA_CONTABIL"})
		assert.True(t, ok)
		assert.Equal(t, "CD_CONTA_CONTABIL", name)

		name, ok = PickColumn(RoleDescricaoConta, []string{"DESCRICAO"})
		assert.True(t, ok)
		assert.Equal(t, "DESCRICAO", name)
	})

	t.Run("candidate order outranks column order", func(t *testing.T) {
		// "saldo final" is the first candidate, so the second column wins
		// even though "vlsaldofinal" also matches the first one.
		name, ok := PickColumn(RoleVlSaldoFinal, []string{"VL_SALDO_FINAL", "SALDO FINAL"})
		assert.True(t, ok)
		assert.Equal(t, "SALDO FINAL", name)
	})

	t.Run("no match returns false", func(t *testing.T) {
		name, ok := PickColumn(RoleRegANS, []string{"DATA", "VALOR"})
		assert.False(t, ok)
		assert.Empty(t, name)
	})

	t.Run("reg ans variants", func(t *testing.T) {
		for _, header := range []string{"REGISTRO ANS", "Reg. ANS", "CodOperadora", "REG_ANS"} {
			_, ok := PickColumn(RoleRegANS, []string{header})
			assert.True(t, ok, "header %q should resolve", header)
		}
	})
}

func TestDetectColumns(t *testing.T) {
	detected := DetectColumns([]string{"REG_ANS", "CD_CONTA_CONTABIL", "DESCRICAO", "VL_SALDO_INICIAL", "VL_SALDO_FINAL"})

	assert.Equal(t, "REG_ANS", detected.RegANS)
	assert.Equal(t, "CD_CONTA_CONTABIL", detected.CdContaContabil)
	assert.Equal(t, "DESCRICAO", detected.DescricaoConta)
	assert.Equal(t, "VL_SALDO_INICIAL", detected.VlSaldoInicial)
	assert.Equal(t, "VL_SALDO_FINAL", detected.VlSaldoFinal)
}

func TestNormalize(t *testing.T) {
	period := models.Period{Ano: 2024, Trimestre: 1}

	t.Run("full layout", func(t *testing.T) {
		table := &models.RawTable{
			Columns: []string{"REG_ANS", "CD_CONTA_CONTABIL", "DESCRICAO", "VL_SALDO_INICIAL", "VL_SALDO_FINAL"},
			Rows: [][]string{
				{"123456", "411", " Eventos Conhecidos ", "1.000,00", "2.000,00"},
			},
		}

		records, ok := Normalize(table, period)
		assert.True(t, ok)
		assert.Len(t, records, 1)
		assert.Equal(t, models.CanonicalRecord{
			Ano:             "2024",
			Trimestre:       "1",
			RegANS:          "123456",
			CdContaContabil: "411",
			DescricaoConta:  "Eventos Conhecidos",
			VlSaldoInicial:  "1.000,00",
			VlSaldoFinal:    "2.000,00",
		}, records[0])
	})

	t.Run("sentinels coerced to null", func(t *testing.T) {
		table := &models.RawTable{
			Columns: []string{"CD_CONTA", "DESCRICAO", "VL_SALDO_FINAL"},
			Rows: [][]string{
				{"411", "Eventos", "nan"},
				{"412", "Provisões", "None"},
				{"413", "Outros", "  "},
			},
		}

		records, ok := Normalize(table, period)
		assert.True(t, ok)
		for _, r := range records {
			assert.Empty(t, r.VlSaldoFinal)
			assert.Empty(t, r.RegANS, "unresolved column stays null")
		}
	})

	t.Run("declines when required columns missing", func(t *testing.T) {
		table := &models.RawTable{
			Columns: []string{"CAMPO", "TIPO", "TAMANHO"}, // a data dictionary
			Rows:    [][]string{{"REG_ANS", "texto", "6"}},
		}

		records, ok := Normalize(table, period)
		assert.False(t, ok)
		assert.Nil(t, records)
	})

	t.Run("declines on empty table", func(t *testing.T) {
		_, ok := Normalize(&models.RawTable{Columns: []string{"CD_CONTA", "DESCRICAO"}}, period)
		assert.False(t, ok)

		_, ok = Normalize(nil, period)
		assert.False(t, ok)
	})

	t.Run("short rows read as null", func(t *testing.T) {
		table := &models.RawTable{
			Columns: []string{"CD_CONTA", "DESCRICAO", "VL_SALDO_FINAL"},
			Rows:    [][]string{{"411", "Eventos"}},
		}

		records, ok := Normalize(table, period)
		assert.True(t, ok)
		assert.Empty(t, records[0].VlSaldoFinal)
	})
}
