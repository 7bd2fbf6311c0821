package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gestor-certificados/api/internal/adapter/repository/memory"
	"github.com/gestor-certificados/api/internal/domain/certificate"
	"github.com/gestor-certificados/api/internal/domain/importer"
	"github.com/gestor-certificados/api/pkg/logger"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<certificados>
  <certificado>
    <razao_social>Acme Comércio Ltda</razao_social>
    <nome_fantasia>Acme</nome_fantasia>
    <cnpj>11.222.333/0001-81</cnpj>
    <telefone>(11) 99999-0000</telefone>
    <data_validade>2099-06-30</data_validade>
  </certificado>
  <certificado>
    <razao_social>Beta Indústria S.A.</razao_social>
    <nome_fantasia>Beta</nome_fantasia>
    <cnpj>00.000.000/0001-91</cnpj>
    <telefone>(21) 98888-1111</telefone>
    <data_validade>2099-12-31</data_validade>
    <observacoes>filial do Rio</observacoes>
  </certificado>
</certificados>`

func newImportService(t *testing.T) (*importer.Service, *certificate.Service, *memory.BatchRepository) {
	t.Helper()
	certRepo := memory.NewCertificateRepository()
	certSvc := certificate.NewService(certRepo, logger.Noop{})
	batchRepo := memory.NewBatchRepository()
	svc := importer.NewService(certSvc, batchRepo, logger.Noop{})
	return svc, certSvc, batchRepo
}

func TestImport(t *testing.T) {
	svc, certSvc, _ := newImportService(t)
	ctx := context.Background()

	report, err := svc.Import(ctx, "user-1", "certificados.xml", strings.NewReader(sampleXML))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if report.Total != 2 || report.Processed != 2 || report.Created != 2 || report.Updated != 0 {
		t.Errorf("relatório = total %d, processados %d, criados %d, atualizados %d",
			report.Total, report.Processed, report.Created, report.Updated)
	}
	if len(report.Errors) != 0 {
		t.Errorf("erros inesperados: %v", report.Errors)
	}

	certs, err := certSvc.List(ctx, "user-1", certificate.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(certs) != 2 {
		t.Fatalf("len(certs) = %d", len(certs))
	}
	for _, c := range certs {
		if !strings.Contains(c.Notes, "importado via importação") {
			t.Errorf("nota de importação ausente em %s: %q", c.CNPJ, c.Notes)
		}
	}

	batch, err := svc.FindBatch(ctx, "user-1", report.BatchID)
	if err != nil {
		t.Fatalf("FindBatch: %v", err)
	}
	if batch.Status != importer.BatchCompleted {
		t.Errorf("status do lote = %q", batch.Status)
	}
	if batch.TotalEntries != 2 || batch.ProcessedEntries != 2 {
		t.Errorf("progresso do lote = %d/%d", batch.ProcessedEntries, batch.TotalEntries)
	}
}

func TestImportIsIdempotentUpsert(t *testing.T) {
	svc, certSvc, _ := newImportService(t)
	ctx := context.Background()

	if _, err := svc.Import(ctx, "user-1", "certificados.xml", strings.NewReader(sampleXML)); err != nil {
		t.Fatalf("primeira importação: %v", err)
	}

	// Reimportar o mesmo arquivo atualiza em vez de duplicar
	report, err := svc.Import(ctx, "user-1", "certificados.xml", strings.NewReader(sampleXML))
	if err != nil {
		t.Fatalf("segunda importação: %v", err)
	}
	if report.Created != 0 || report.Updated != 2 {
		t.Errorf("segunda passagem: criados %d, atualizados %d", report.Created, report.Updated)
	}

	certs, err := certSvc.List(ctx, "user-1", certificate.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(certs) != 2 {
		t.Errorf("certificados duplicados após reimportação: %d", len(certs))
	}
}

func TestImportPartialFailure(t *testing.T) {
	svc, certSvc, _ := newImportService(t)
	ctx := context.Background()

	// A segunda entrada tem data inválida; as demais devem ser processadas
	xmlData := `<certificados>
  <certificado>
    <razao_social>Acme Comércio Ltda</razao_social>
    <nome_fantasia>Acme</nome_fantasia>
    <cnpj>11.222.333/0001-81</cnpj>
    <telefone>(11) 99999-0000</telefone>
    <data_validade>2099-06-30</data_validade>
  </certificado>
  <certificado>
    <razao_social>Beta Indústria S.A.</razao_social>
    <nome_fantasia>Beta</nome_fantasia>
    <cnpj>00.000.000/0001-91</cnpj>
    <telefone>(21) 98888-1111</telefone>
    <data_validade>30/06/2099</data_validade>
  </certificado>
  <certificado>
    <razao_social>Gamma Serviços ME</razao_social>
    <nome_fantasia>Gamma</nome_fantasia>
    <cnpj>33.000.167/0001-01</cnpj>
    <telefone>(31) 97777-2222</telefone>
    <data_validade>2099-03-15</data_validade>
  </certificado>
</certificados>`

	report, err := svc.Import(ctx, "user-1", "lote.xml", strings.NewReader(xmlData))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if report.Total != 3 || report.Processed != 2 {
		t.Errorf("total %d, processados %d; esperava 3 e 2", report.Total, report.Processed)
	}
	if len(report.Errors) != 1 {
		t.Fatalf("len(Errors) = %d", len(report.Errors))
	}
	if report.Errors[0].Index != 2 {
		t.Errorf("índice do erro = %d, esperava 2", report.Errors[0].Index)
	}
	if !strings.Contains(report.Errors[0].Message, "data de validade inválida") {
		t.Errorf("mensagem do erro: %q", report.Errors[0].Message)
	}

	certs, err := certSvc.List(ctx, "user-1", certificate.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(certs) != 2 {
		t.Errorf("certificados persistidos = %d, esperava 2", len(certs))
	}
}

func TestImportMalformedXML(t *testing.T) {
	svc, certSvc, batches := newImportService(t)
	ctx := context.Background()

	_, err := svc.Import(ctx, "user-1", "quebrado.xml", strings.NewReader("<certificados><certificado>"))
	if !errors.Is(err, importer.ErrParse) {
		t.Fatalf("esperava ErrParse, obteve %v", err)
	}

	// Nenhuma entrada é persistida e o lote fica marcado como falho
	certs, err := certSvc.List(ctx, "user-1", certificate.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(certs) != 0 {
		t.Errorf("certificados persistidos após XML malformado: %d", len(certs))
	}

	list, err := batches.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 1 || list[0].Status != importer.BatchFailed {
		t.Errorf("lote não marcado como falho: %+v", list)
	}
}

func TestImportRejectsNonXMLFilename(t *testing.T) {
	svc, _, batches := newImportService(t)
	ctx := context.Background()

	_, err := svc.Import(ctx, "user-1", "planilha.csv", strings.NewReader(sampleXML))
	if !errors.Is(err, importer.ErrParse) {
		t.Fatalf("esperava ErrParse para extensão não XML, obteve %v", err)
	}
	list, err := batches.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("lote registrado para arquivo rejeitado na extensão")
	}
}

func TestImportSingleRootElement(t *testing.T) {
	svc, _, _ := newImportService(t)
	ctx := context.Background()

	xmlData := `<certificado>
  <razao_social>Acme Comércio Ltda</razao_social>
  <nome_fantasia>Acme</nome_fantasia>
  <cnpj>11.222.333/0001-81</cnpj>
  <telefone>(11) 99999-0000</telefone>
  <data_validade>2099-06-30T00:00:00Z</data_validade>
</certificado>`

	report, err := svc.Import(ctx, "user-1", "unico.xml", strings.NewReader(xmlData))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if report.Total != 1 || report.Created != 1 {
		t.Errorf("total %d, criados %d", report.Total, report.Created)
	}
}

func TestFindBatchOwnership(t *testing.T) {
	svc, _, _ := newImportService(t)
	ctx := context.Background()

	report, err := svc.Import(ctx, "user-1", "certificados.xml", strings.NewReader(sampleXML))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if _, err := svc.FindBatch(ctx, "user-2", report.BatchID); !errors.Is(err, importer.ErrBatchNotFound) {
		t.Errorf("lote de outro usuário: esperava ErrBatchNotFound, obteve %v", err)
	}
}
