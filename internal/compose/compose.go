// Package compose derives the canonical text body of a request-for-footage
// document from a FormData snapshot.
//
// The template is an ordered list of (condition, renderer) clauses evaluated
// in a fixed sequence, so the composition order is data, not control flow,
// and each clause is testable on its own. Compose is pure: identical input
// always yields byte-identical output.
package compose

import (
	"strings"

	"github.com/dasrj/oficiogen/internal/domain"
)

// Clause is one conditional section of the document body.
type Clause struct {
	Name   string
	When   func(f domain.FormData) bool
	Render func(f domain.FormData) string
}

// always is the condition of unconditional clauses.
func always(domain.FormData) bool { return true }

// Clauses returns the document template in rendering order.
func Clauses() []Clause {
	return []Clause{
		{Name: "cabecalho", When: always, Render: renderCabecalho},
		{Name: "coordenadas", When: domain.FormData.HasCoordinates, Render: renderCoordenadas},
		{Name: "corpo", When: always, Render: renderCorpo},
		{Name: "observacoes", When: hasObservacoes, Render: renderObservacoes},
		{Name: "responsavel", When: hasResponsavel, Render: renderResponsavel},
		{Name: "assinatura", When: always, Render: renderAssinatura},
	}
}

// Compose renders the full document body for a FormData snapshot.
func Compose(f domain.FormData) string {
	var b strings.Builder
	for _, c := range Clauses() {
		if c.When(f) {
			b.WriteString(c.Render(f))
		}
	}
	return b.String()
}

// =============================================================================
// Conditions
// =============================================================================

func hasObservacoes(f domain.FormData) bool {
	return strings.TrimSpace(f.Observacoes) != ""
}

func hasResponsavel(f domain.FormData) bool {
	return strings.TrimSpace(f.RespNome) != "" ||
		strings.TrimSpace(f.RespTel) != "" ||
		strings.TrimSpace(f.RespEmail) != ""
}

// =============================================================================
// Renderers
// =============================================================================

func renderCabecalho(f domain.FormData) string {
	var b strings.Builder
	b.WriteString("OFÍCIO REQUISIÇÃO DE IMAGENS\n\n")
	b.WriteString("DATA: ")
	b.WriteString(FormatDate(f.DataOficio))
	b.WriteString(strings.Repeat(" ", 60))
	b.WriteString("Procedimento: ")
	b.WriteString(f.NProc)
	b.WriteString("\n\nSrº. Proprietário / Responsável\n\n")
	b.WriteString("A Polícia Civil do Estado do Rio de Janeiro, por intermédio da DELEGACIA ANTISSEQUESTRO, " +
		"no uso de suas atribuições legais, com fulcro no disposto nos artigos 6º, III e 13, II, ambos do " +
		"Código de Processo Penal, vem, por meio deste, REQUISITA a V.S.ª as imagens do circuito de " +
		"vigilância/monitoramento instaladas no endereço:\n\n")
	b.WriteString(f.Endereco)
	return b.String()
}

func renderCoordenadas(f domain.FormData) string {
	return "\n(Coordenadas: " + f.Lat + ", " + f.Lon + ")"
}

func renderCorpo(f domain.FormData) string {
	var b strings.Builder
	b.WriteString("\n\nvisando à instrução em procedimento inquisitivo instaurado nesta Unidade de Polícia Judiciária.\n\n")
	b.WriteString("Para os devidos fins, as imagens devem corresponder ao seguinte período: \n\n")
	b.WriteString("das ")
	b.WriteString(FormatDateTime(f.DataInicio, f.HoraInicio))
	b.WriteString(" às ")
	b.WriteString(FormatDateTime(f.DataFim, f.HoraFim))
	b.WriteString(".\n\n")
	b.WriteString("Para maior celeridade e eficiência no compartilhamento das informações, solicita-se, " +
		"preferencialmente, que os arquivos sejam disponibilizados em plataformas de armazenamento em nuvem, " +
		"tais como Google Drive, OneDrive, Dropbox ou equivalente, mediante a geração de um link para " +
		"compartilhamento com permissão de edição dos arquivos, a ser encaminhado para os seguintes endereços " +
		"de e-mail listados abaixo.\n\n")
	b.WriteString("Alternativamente, o link para compartilhamento também poderá ser encaminhado para o número " +
		"de telefone 2198596-7060 (via aplicativo WhatsApp).\n\n")
	b.WriteString("Reforça-se que, para o adequado manuseio e análise do material requisitado, é imprescindível " +
		"que os arquivos compartilhados estejam habilitados para EDIÇÃO.\n\n")
	b.WriteString("Além disso, disponibilizamos a opção de entrega dos arquivos em PEN DRIVE, bastando para isso " +
		"que seja realizado contato prévio para definirmos a forma de buscarmos o dispositivo. Os agendamentos " +
		"podem ser feitos por meio dos contatos listados abaixo.\n\n")
	b.WriteString("Ressalto, que o não atendimento a presente REQUISIÇÃO sujeitará o responsável às penas do " +
		"CRIME DE DESOBEDIÊNCIA previsto no artigo 330 do Código Penal.\n\n")
	b.WriteString("Por fim, imperioso advertir que a manipulação, apagamento ou qualquer modificação dos dados " +
		"e imagens ora requisitados poderá acarretar no CRIME DE FRAUDE PROCESSUAL conforme prevê o artigo 347 " +
		"do Código Penal.\n\n")
	b.WriteString("Para maiores informações favor entrar em contato através dos contatos: \n")
	b.WriteString("E-mail:  das.delegaciaantissequestro@gmail.com ou laquino@pcivil.rj.gov.br\n")
	b.WriteString("Telefone (WhatsApp): 2198596-7060")
	return b.String()
}

func renderObservacoes(f domain.FormData) string {
	return "\n\nObservações: " + f.Observacoes
}

func renderResponsavel(f domain.FormData) string {
	var b strings.Builder
	b.WriteString("\n\nResponsável no local: ")
	b.WriteString(f.RespNome)
	if strings.TrimSpace(f.RespTel) != "" {
		b.WriteString(" – ")
		b.WriteString(f.RespTel)
	}
	if strings.TrimSpace(f.RespEmail) != "" {
		b.WriteString(" – ")
		b.WriteString(f.RespEmail)
	}
	return b.String()
}

func renderAssinatura(domain.FormData) string {
	return "\n\nAtenciosamente, \n\n" +
		"_________________________\n" +
		"Assinado por ordem do LEANDRO AQUINO GOUGET\n" +
		"Delegado de Polícia, ID 565560-9"
}
