// The fixtures in this directory model the files artemisctl works on:
//
//   - vendor_broker.xml: broker.xml as "artemis create" generates it
//   - template_broker.xml: a replacement config shipped by the consumer application
//   - missing_paging.xml: a config without paging-directory
//   - wrong_namespace.xml: correct element names outside the Artemis namespaces
//   - candlepin.conf: consumer config with duplicated audit broker keys
//
// ScaffoldScript and ReleaseArchive produce a tiny release whose bin/artemis is
// a shell script, so install runs can be exercised end to end without Java.
package artemis
